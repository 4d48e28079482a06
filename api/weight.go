package api

import (
	"time"

	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// WeightHandler 体重记录处理器
type WeightHandler struct {
	loc *time.Location
}

// NewWeightHandler 创建体重记录处理器
func NewWeightHandler(loc *time.Location) *WeightHandler {
	return &WeightHandler{loc: loc}
}

// CreateWeightRequest 创建体重记录请求
type CreateWeightRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"required" example:"78.4"`
}

// Create 创建体重记录
// @Summary 创建体重记录
// @Tags 体重
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWeightRequest true "体重信息"
// @Success 200 {object} Response{data=models.Weight} "创建成功"
// @Failure 400 {object} Response "体重必须为正"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/weights [post]
func (h *WeightHandler) Create(c *gin.Context) {
	var req CreateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	weight, err := service.NewWeight(req.WeightKg, time.Now().In(h.loc))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Create(&weight).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建体重记录失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "创建成功", weight)
}

// List 获取体重记录列表
// @Summary 获取体重记录列表
// @Tags 体重
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Weight}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/weights [get]
func (h *WeightHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	query := database.DB.Model(&models.Weight{})
	var total int64
	query.Count(&total)

	var weights []models.Weight
	if err := query.Order("record_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&weights).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: weights})
}

// Latest 获取最近一条体重记录
// @Summary 获取最近一条体重记录
// @Tags 体重
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Weight} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "暂无记录"
// @Router /api/v1/weights/latest [get]
func (h *WeightHandler) Latest(c *gin.Context) {
	var weight models.Weight
	if err := database.DB.Order("record_time DESC").First(&weight).Error; err != nil {
		NotFound(c, "暂无体重记录")
		return
	}
	Success(c, weight)
}
