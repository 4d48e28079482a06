package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"lifelog/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealTestConfig(aiBaseURL string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		AI:      config.AIConfig{BaseURL: aiBaseURL, APIKey: "test-key", Model: "gemini-2.5-flash"},
		Tracker: config.TrackerConfig{Timezone: "UTC"},
	}
}

func TestMealHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `meals`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/meals", NewMealHandler(mealTestConfig("")).Create)

	body := `{"name":"鸡胸沙拉","calories":420,"protein_g":38,"carbs_g":20,"fat_g":18}`
	req := httptest.NewRequest("POST", "/meals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	// 不传 source 默认 manual
	assert.Equal(t, "manual", data["source"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMealHandler_Create_NegativeNutrition(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/meals", NewMealHandler(mealTestConfig("")).Create)

	body := `{"name":"x","calories":-1}`
	req := httptest.NewRequest("POST", "/meals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestMealHandler_Analyze_Text(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	// 模拟推理服务
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":
			"{\"name\":\"鸡胸沙拉\",\"estimated_calories\":600,\"protein_g\":40,\"carbs_g\":50,\"fat_g\":20}"
		}]}}]}`)
	}))
	defer ai.Close()

	router := gin.New()
	router.POST("/meals/analyze", NewMealHandler(mealTestConfig(ai.URL)).Analyze)

	form := url.Values{"note": {"一份鸡胸沙拉"}}
	req := httptest.NewRequest("POST", "/meals/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ai_text", data["source"])

	// 估算 600 kcal 对宏量推导 540 kcal 校准为自洽四元组
	calibrated := data["calibrated"].(map[string]interface{})
	assert.Equal(t, float64(42), calibrated["protein_g"])
	assert.Equal(t, float64(52), calibrated["carbs_g"])
	assert.Equal(t, float64(21), calibrated["fat_g"])
	assert.Equal(t, float64(565), calibrated["calories"])
}

func TestMealHandler_Analyze_NoInput(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/meals/analyze", NewMealHandler(mealTestConfig("")).Analyze)

	req := httptest.NewRequest("POST", "/meals/analyze", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestMealHandler_Analyze_UpstreamFailure(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ai.Close()

	router := gin.New()
	router.POST("/meals/analyze", NewMealHandler(mealTestConfig(ai.URL)).Analyze)

	form := url.Values{"note": {"拉面"}}
	req := httptest.NewRequest("POST", "/meals/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 分析失败透传为 502，不落任何半成品记录
	assert.Equal(t, 502, w.Code)
}
