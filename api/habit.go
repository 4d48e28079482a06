package api

import (
	"time"

	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// HabitHandler 习惯打卡处理器
type HabitHandler struct {
	loc *time.Location
}

// NewHabitHandler 创建习惯打卡处理器
func NewHabitHandler(loc *time.Location) *HabitHandler {
	return &HabitHandler{loc: loc}
}

// CreateHabitRequest 习惯打卡请求
type CreateHabitRequest struct {
	ReadBook   bool   `json:"read_book" example:"true"`
	TidiedHome bool   `json:"tidied_home" example:"false"`
	Reflection string `json:"reflection" example:"今天专注度不错"`
}

// Create 习惯打卡
// @Summary 习惯打卡
// @Description 追加一条当日习惯记录（读书/整理 + 反思）
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHabitRequest true "打卡信息"
// @Success 200 {object} Response{data=models.Habit} "打卡成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	habit := service.NewHabit(req.ReadBook, req.TidiedHome, req.Reflection, time.Now().In(h.loc))
	if err := database.DB.Create(&habit).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "打卡失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "打卡成功", habit)
}

// Today 获取今日打卡
// @Summary 获取今日打卡
// @Description 今日最近一条习惯记录；没有则返回 404
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Habit} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "今天还没有打卡"
// @Router /api/v1/habits/today [get]
func (h *HabitHandler) Today(c *gin.Context) {
	now := time.Now().In(h.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)

	var habit models.Habit
	if err := database.DB.
		Where("record_time >= ? AND record_time < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Order("record_time DESC").
		First(&habit).Error; err != nil {
		NotFound(c, "今天还没有打卡")
		return
	}
	Success(c, habit)
}

// GetStatistics 获取习惯月度统计
// @Summary 获取习惯月度统计
// @Description 指定年月（默认当月）各习惯的完成天数
// @Tags 习惯
// @Produce json
// @Security BearerAuth
// @Param year_month query string false "年月（格式：2025-01，默认当月）"
// @Success 200 {object} Response{data=service.MonthlyHabitCounts} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/habits/statistics [get]
func (h *HabitHandler) GetStatistics(c *gin.Context) {
	now := time.Now().In(h.loc)
	year, month := now.Year(), now.Month()

	if ym := c.Query("year_month"); ym != "" {
		t, err := time.ParseInLocation("2006-01", ym, h.loc)
		if err != nil {
			BadRequest(c, "year_month格式错误，应为：2025-01")
			return
		}
		year, month = t.Year(), t.Month()
	}

	var habits []models.Habit
	_ = database.DB.Find(&habits).Error

	Success(c, service.HabitCountsForMonth(habits, year, month, h.loc))
}
