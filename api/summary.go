package api

import (
	"time"

	"lifelog/config"
	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// summaryCache 今日摘要的读缓存。单用户系统只有这一份共享可变状态，
// 任何写入日志的处理器都必须调用 invalidateSummary（写后失效纪律）。
var summaryCache = service.NewSummaryCache(0)

// InitSummaryCache 按配置初始化摘要缓存的 TTL
func InitSummaryCache(cfg *config.Config) {
	ttl := time.Duration(cfg.Tracker.SummaryCacheMinutes) * time.Minute
	summaryCache = service.NewSummaryCache(ttl)
}

func invalidateSummary() {
	summaryCache.Invalidate()
}

// SummaryHandler 今日摘要处理器
type SummaryHandler struct {
	loc      *time.Location
	settings *service.SettingsService
}

// NewSummaryHandler 创建今日摘要处理器
func NewSummaryHandler(loc *time.Location) *SummaryHandler {
	return &SummaryHandler{
		loc:      loc,
		settings: service.NewSettingsService(database.GetDB()),
	}
}

// TodaySummaryResponse 今日摘要
type TodaySummaryResponse struct {
	Date      string                    `json:"date"`
	Expenses  service.ExpenseDaySummary `json:"expenses"`
	Nutrition service.NutritionTotals   `json:"nutrition"`
	Progress  service.TargetProgress    `json:"progress"`
	Weight    *models.Weight            `json:"weight,omitempty"`
	Habit     *models.Habit             `json:"habit,omitempty"`
	SmokeFree *service.SmokeFreeElapsed `json:"smoke_free,omitempty"`
}

// Today 获取今日摘要
// @Summary 获取今日摘要
// @Description 聚合今日开销、营养完成度、最近体重、今日打卡与戒烟时长。
// @Description 结果有分钟级缓存，任何写入都会使缓存失效。
// @Tags 摘要
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=TodaySummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary/today [get]
func (h *SummaryHandler) Today(c *gin.Context) {
	now := time.Now().In(h.loc)

	if cached, ok := summaryCache.Get(now); ok {
		Success(c, cached)
		return
	}

	summary := h.buildSummary(now)
	summaryCache.Set(summary, now)
	Success(c, summary)
}

// buildSummary 重新计算今日摘要。所有读都容忍失败并降级为空数据。
func (h *SummaryHandler) buildSummary(now time.Time) TodaySummaryResponse {
	var expenses []models.Expense
	_ = database.DB.Find(&expenses).Error
	var meals []models.Meal
	_ = database.DB.Find(&meals).Error

	settings := h.settings.Load()
	totals := service.DailyNutritionTotals(meals, now, h.loc)
	targets := service.Targets(settings)

	summary := TodaySummaryResponse{
		Date:      now.Format("2006-01-02"),
		Expenses:  service.DailyExpenseSummary(expenses, now, h.loc),
		Nutrition: totals,
		Progress:  service.DailyTargetProgress(totals, targets),
	}

	var weight models.Weight
	if err := database.DB.Order("record_time DESC").First(&weight).Error; err == nil {
		summary.Weight = &weight
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	var habit models.Habit
	if err := database.DB.
		Where("record_time >= ? AND record_time < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Order("record_time DESC").
		First(&habit).Error; err == nil {
		summary.Habit = &habit
	}

	if quit := service.QuitSmokingTime(settings, h.loc); quit != nil {
		elapsed := service.Elapsed(*quit, now)
		summary.SmokeFree = &elapsed
	}

	return summary
}
