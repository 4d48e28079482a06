package api

import (
	"time"

	"lifelog/config"
	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报告处理器：按需发送每日摘要邮件
type ReportHandler struct {
	loc      *time.Location
	email    *service.EmailService
	settings *service.SettingsService
	cfg      *config.Config
}

// NewReportHandler 创建报告处理器
func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		loc:      cfg.Location(),
		email:    service.NewEmailService(&cfg.Email),
		settings: service.NewSettingsService(database.GetDB()),
		cfg:      cfg,
	}
}

// SendReportRequest 发送摘要请求
type SendReportRequest struct {
	To string `json:"to" example:"me@example.com"` // 可选，默认发给账号邮箱
}

// SendDaily 发送每日摘要邮件
// @Summary 发送每日摘要邮件
// @Description 汇总今日支出、营养完成度、体重与打卡状态，发送 HTML 摘要邮件。
// @Description 未指定收件人时发给配置的账号邮箱
// @Tags 报告
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendReportRequest false "收件人"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "收件人为空"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "发送失败"
// @Router /api/v1/report/email [post]
func (h *ReportHandler) SendDaily(c *gin.Context) {
	var req SendReportRequest
	_ = c.ShouldBindJSON(&req)

	to := req.To
	if to == "" {
		to = h.cfg.Auth.Email
	}
	if to == "" {
		BadRequest(c, "未指定收件人，且配置中没有账号邮箱")
		return
	}

	summary := h.buildDailySummary(time.Now().In(h.loc))
	if err := h.email.SendDailySummary(to, summary); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送摘要邮件失败"))
		return
	}

	SuccessWithMessage(c, "发送成功", gin.H{"to": to})
}

// SendTest 发送测试邮件
// @Summary 发送测试邮件
// @Description 验证 SMTP 配置是否可用
// @Tags 报告
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendReportRequest false "收件人"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "收件人为空"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "发送失败"
// @Router /api/v1/report/test [post]
func (h *ReportHandler) SendTest(c *gin.Context) {
	var req SendReportRequest
	_ = c.ShouldBindJSON(&req)

	to := req.To
	if to == "" {
		to = h.cfg.Auth.Email
	}
	if to == "" {
		BadRequest(c, "未指定收件人，且配置中没有账号邮箱")
		return
	}

	if err := h.email.SendTestEmail(to); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送测试邮件失败"))
		return
	}

	SuccessWithMessage(c, "发送成功", gin.H{"to": to})
}

// buildDailySummary 汇总今日数据用于邮件正文
func (h *ReportHandler) buildDailySummary(now time.Time) service.DailySummary {
	var expenses []models.Expense
	_ = database.DB.Find(&expenses).Error
	var meals []models.Meal
	_ = database.DB.Find(&meals).Error

	expenseDay := service.DailyExpenseSummary(expenses, now, h.loc)
	settings := h.settings.Load()

	summary := service.DailySummary{
		Date:         now,
		ExpenseTotal: expenseDay.Total.StringFixed(2),
		ExpenseCount: expenseDay.Count,
		Nutrition:    service.DailyNutritionTotals(meals, now, h.loc),
		Targets:      service.Targets(settings),
	}

	var weight models.Weight
	if err := database.DB.Order("record_time DESC").First(&weight).Error; err == nil {
		summary.LatestWeight = weight.WeightKg
		summary.HasWeight = true
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	var count int64
	database.DB.Model(&models.Habit{}).
		Where("record_time >= ? AND record_time < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count)
	summary.HabitReported = count > 0

	return summary
}
