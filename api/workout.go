package api

import (
	"strconv"
	"time"

	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler 训练记录处理器
type WorkoutHandler struct {
	loc *time.Location
}

// NewWorkoutHandler 创建训练记录处理器
func NewWorkoutHandler(loc *time.Location) *WorkoutHandler {
	return &WorkoutHandler{loc: loc}
}

// CreateSessionRequest 提交一次训练 session
// 重量/次数按原样保存为字符串（允许 "62,5" 这类本地化小数）
type CreateSessionRequest struct {
	Program  string             `json:"program" binding:"required" example:"Pull 1"`
	Exercise string             `json:"exercise" binding:"required" example:"Bench Press"`
	Note     string             `json:"note" example:"状态不错"`
	Sets     []service.SetInput `json:"sets" binding:"required"`
}

// CreateSession 提交训练 session
// @Summary 提交训练 session
// @Description 只保留重量和次数都填写的组；缺一项的组静默丢弃；
// @Description 一组都不剩时拒绝保存。保留的组共享同一时间戳和备注。
// @Tags 训练
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSessionRequest true "训练信息"
// @Success 200 {object} Response{data=[]models.WorkoutSet} "保存成功"
// @Failure 400 {object} Response "请求参数错误或没有完整的组"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/workouts [post]
func (h *WorkoutHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	sets, err := service.BuildWorkoutSession(req.Program, req.Exercise, req.Note, req.Sets, time.Now().In(h.loc))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	// 一次 session 整批写入
	if err := database.DB.Create(&sets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "保存训练记录失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "保存成功", sets)
}

// LastSessions 按动作获取最近一次训练摘要
// @Summary 按动作获取最近一次训练摘要
// @Description 按 program 过滤后，每个动作返回其最近一次 session 的全部组
// @Description （按组号升序拼接），跨课表的同名动作互不串历史。
// @Tags 训练
// @Produce json
// @Security BearerAuth
// @Param program query string false "课表名，如 Pull 1；不传则不过滤"
// @Success 200 {object} Response{data=map[string]service.SessionSummary} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/workouts/last [get]
func (h *WorkoutHandler) LastSessions(c *gin.Context) {
	program := c.Query("program")

	// 读失败降级为空列表
	var sets []models.WorkoutSet
	_ = database.DB.Find(&sets).Error

	Success(c, service.LatestSessionPerExercise(sets, program))
}

// Recent 获取近期训练 session 列表
// @Summary 获取近期训练 session 列表
// @Description 共享（时间戳, 课表）的记录折叠为一个 session，按时间降序
// @Tags 训练
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数" default(10)
// @Success 200 {object} Response{data=[]service.SessionInfo} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/workouts/recent [get]
func (h *WorkoutHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var sets []models.WorkoutSet
	_ = database.DB.Find(&sets).Error

	Success(c, service.RecentSessions(sets, limit))
}
