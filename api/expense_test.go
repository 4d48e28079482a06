package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lifelog/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRows(name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "sort", "created_at", "updated_at", "deleted_at"}).
		AddRow(1, name, 10, time.Now(), time.Now(), nil)
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 查询类别
	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WithArgs("餐饮").
		WillReturnRows(categoryRows("餐饮"))

	// INSERT expense
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/expenses", NewExpenseHandler(time.UTC).Create)

	body := `{"amount":"99.99","category":"餐饮","payment_method":"cash","note":"午餐"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_InvalidCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WithArgs("无效类别").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.POST("/expenses", NewExpenseHandler(time.UTC).Create)

	body := `{"amount":"99","category":"无效类别","payment_method":"cash"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_InvalidAmount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WithArgs("餐饮").
		WillReturnRows(categoryRows("餐饮"))

	router := gin.New()
	router.POST("/expenses", NewExpenseHandler(time.UTC).Create)

	// 金额为负：类别校验通过后在构建器处被拒
	body := `{"amount":"-5","category":"餐饮","payment_method":"cash"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_GetStatistics(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "category", "payment_method", "note", "impulsive", "record_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "50.00", "餐饮", "cash", "", false, now, now, now, nil).
			AddRow(2, "30.00", "交通", "cash", "", false, now, now, now, nil))

	router := gin.New()
	router.GET("/expenses/statistics", NewExpenseHandler(time.UTC).GetStatistics)

	req := httptest.NewRequest("GET", "/expenses/statistics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	today := data["today"].(map[string]interface{})
	assert.Equal(t, float64(2), today["count"])
	assert.Equal(t, "80.00", data["month_total"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_GetStatistics_BadYearMonth(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.GET("/expenses/statistics", NewExpenseHandler(time.UTC).GetStatistics)

	req := httptest.NewRequest("GET", "/expenses/statistics?year_month=2025/06", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestExpenseHandler_GetCategories(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "餐饮", 10, time.Now(), time.Now(), nil).
			AddRow(2, "交通", 20, time.Now(), time.Now(), nil))

	router := gin.New()
	router.GET("/categories", NewExpenseHandler(time.UTC).GetCategories)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
