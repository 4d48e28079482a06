package api

import (
	"lifelog/database"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler 设置处理器
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler 创建设置处理器
func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{settings: service.NewSettingsService(database.GetDB())}
}

// Get 获取全部设置
// @Summary 获取全部设置
// @Description 缺失的键回落到默认值；读库失败时整体降级为默认值
// @Tags 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=map[string]string} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	Success(c, h.settings.Load())
}

// UpdateSettingsRequest 保存设置请求
// 未出现的键沿用当前值（等效合并），未知键忽略
type UpdateSettingsRequest map[string]string

// Update 保存设置
// @Summary 保存设置
// @Description 存储层整表替换；请求中未出现的键沿用当前值，避免部分提交抹掉无关键
// @Tags 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "要更新的键值"
// @Success 200 {object} Response{data=map[string]string} "保存成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "保存失败"
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.settings.Save(req); err != nil {
		// 写失败必须如实上报，绝不假装成功
		InternalError(c, SafeErrorMessage(err, "保存设置失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "保存成功", h.settings.Load())
}
