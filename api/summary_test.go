package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lifelog/config"
	"lifelog/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectSummaryQueries 摘要重建需要的全部读
func expectSummaryQueries(mock sqlmock.Sqlmock) {
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "category", "payment_method", "note", "impulsive", "record_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "25.00", "餐饮", "cash", "", false, now, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `meals`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "calories", "protein_g", "carbs_g", "fat_g", "source", "photo_path", "record_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "鸡胸沙拉", 420, 38.0, 20.0, 18.0, "manual", "", now, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `settings`").
		WillReturnRows(settingRows(nil))
	mock.ExpectQuery("SELECT .* FROM `weights`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "weight_kg", "record_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 78.4, now, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `habits`").
		WillReturnRows(sqlmock.NewRows([]string{}))
}

func TestSummaryHandler_Today(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	summaryCache = service.NewSummaryCache(0) // 禁用缓存
	expectSummaryQueries(mock)

	router := gin.New()
	router.GET("/summary/today", NewSummaryHandler(time.UTC).Today)

	req := httptest.NewRequest("GET", "/summary/today", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	expenses := data["expenses"].(map[string]interface{})
	assert.Equal(t, float64(1), expenses["count"])

	nutrition := data["nutrition"].(map[string]interface{})
	assert.Equal(t, float64(420), nutrition["calories"])

	weight := data["weight"].(map[string]interface{})
	assert.Equal(t, 78.4, weight["weight_kg"])

	// 今天没打卡、未设置戒烟日期：对应字段省略
	assert.NotContains(t, data, "habit")
	assert.NotContains(t, data, "smoke_free")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_Today_CacheHit(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	InitSummaryCache(&config.Config{Tracker: config.TrackerConfig{SummaryCacheMinutes: 5}})
	defer func() { summaryCache = service.NewSummaryCache(0) }()

	// 只允许一轮查询：第二次请求必须命中缓存
	expectSummaryQueries(mock)

	router := gin.New()
	router.GET("/summary/today", NewSummaryHandler(time.UTC).Today)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/summary/today", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_InvalidateOnWrite(t *testing.T) {
	InitSummaryCache(&config.Config{Tracker: config.TrackerConfig{SummaryCacheMinutes: 5}})
	defer func() { summaryCache = service.NewSummaryCache(0) }()

	summaryCache.Set("stale", time.Now())
	invalidateSummary()

	// 写后失效：缓存里的旧值必须消失
	_, ok := summaryCache.Get(time.Now())
	assert.False(t, ok)
}
