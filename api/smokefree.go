package api

import (
	"time"

	"lifelog/database"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// SmokeFreeHandler 戒烟计时处理器
type SmokeFreeHandler struct {
	loc      *time.Location
	settings *service.SettingsService
}

// NewSmokeFreeHandler 创建戒烟计时处理器
func NewSmokeFreeHandler(loc *time.Location) *SmokeFreeHandler {
	return &SmokeFreeHandler{
		loc:      loc,
		settings: service.NewSettingsService(database.GetDB()),
	}
}

// SmokeFreeResponse 戒烟状态响应
type SmokeFreeResponse struct {
	QuitDate string                   `json:"quit_date"`
	Elapsed  service.SmokeFreeElapsed `json:"elapsed"`
	Card     string                   `json:"card"`
}

// Status 获取戒烟状态
// @Summary 获取戒烟状态
// @Description 自戒烟时刻起的天/时/分，外加一张随机干预卡片；
// @Description 未设置戒烟日期时返回 404
// @Tags 戒烟
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SmokeFreeResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "未设置戒烟日期"
// @Router /api/v1/smoke-free [get]
func (h *SmokeFreeHandler) Status(c *gin.Context) {
	settings := h.settings.Load()
	quit := service.QuitSmokingTime(settings, h.loc)
	if quit == nil {
		NotFound(c, "未设置戒烟日期，请先在设置中填写 quit_smoking_date")
		return
	}

	now := time.Now().In(h.loc)
	Success(c, SmokeFreeResponse{
		QuitDate: quit.Format("2006-01-02 15:04:05"),
		Elapsed:  service.Elapsed(*quit, now),
		Card:     service.PickCard(nil),
	})
}
