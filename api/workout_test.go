package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutHandler_CreateSession(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workout_sets`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/workouts", NewWorkoutHandler(time.UTC).CreateSession)

	body := `{"program":"PPL","exercise":"卧推","note":"状态不错","sets":[
		{"weight":"60","reps":"8"},
		{"weight":"","reps":"8"},
		{"weight":"62,5","reps":"6"}
	]}`
	req := httptest.NewRequest("POST", "/workouts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 不完整的组被丢弃，剩下两组重新编号
	sets := resp["data"].([]interface{})
	require.Len(t, sets, 2)
	first := sets[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["set_number"])
	assert.Equal(t, "60", first["weight"])
	second := sets[1].(map[string]interface{})
	assert.Equal(t, float64(2), second["set_number"])
	assert.Equal(t, "62,5", second["weight"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutHandler_CreateSession_NothingToSave(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/workouts", NewWorkoutHandler(time.UTC).CreateSession)

	// 所有组都不完整：不写库，直接 400
	body := `{"program":"PPL","exercise":"卧推","sets":[{"weight":"","reps":"8"}]}`
	req := httptest.NewRequest("POST", "/workouts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestWorkoutHandler_LastSessions(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	older := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 8, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `workout_sets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "program", "exercise", "set_number", "weight", "reps", "note", "record_time", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "PPL", "卧推", 1, "60", "8", "", older, older, older, nil).
			AddRow(2, "PPL", "卧推", 1, "62,5", "6", "", newer, newer, newer, nil).
			AddRow(3, "PPL", "卧推", 2, "65", "5", "", newer, newer, newer, nil))

	router := gin.New()
	router.GET("/workouts/last", NewWorkoutHandler(time.UTC).LastSessions)

	req := httptest.NewRequest("GET", "/workouts/last?program=PPL", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	bench := data["卧推"].(map[string]interface{})
	assert.Equal(t, "S1: 62,5x6 | S2: 65x5", bench["sets"])
	require.NoError(t, mock.ExpectationsWereMet())
}
