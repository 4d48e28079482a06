package api

import (
	"strings"
	"time"

	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	loc *time.Location
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(loc *time.Location) *ExpenseHandler {
	return &ExpenseHandler{loc: loc}
}

// CreateExpenseRequest 创建消费记录请求
// 时间戳由服务端时钟打点，不接受客户端传入
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required" example:"99.99"`
	Category      string          `json:"category" binding:"required" example:"餐饮"`
	PaymentMethod string          `json:"payment_method" binding:"required" example:"cash"`
	Note          string          `json:"note" example:"午餐"`
	Impulsive     bool            `json:"impulsive" example:"false"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 追加一条消费记录，时间戳由服务端按固定时区打点
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 校验类别是否存在（来源于数据库）
	req.Category = strings.TrimSpace(req.Category)
	var cat models.ExpenseCategory
	if err := database.DB.Where("name = ?", req.Category).First(&cat).Error; err != nil {
		BadRequest(c, "无效的消费类别")
		return
	}

	expense, err := service.NewExpense(req.Amount, req.Category, req.PaymentMethod, req.Note, req.Impulsive, time.Now().In(h.loc))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建消费记录失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "创建成功", expense)
}

// ExpenseListRequest 消费记录列表请求
type ExpenseListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Category  string `form:"category" example:"餐饮"`
	StartTime string `form:"start_time" example:"2025-01-01"`
	EndTime   string `form:"end_time" example:"2025-12-31"`
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取消费记录列表，支持分页和筛选
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "类别筛选"
// @Param start_time query string false "开始时间 (2025-01-01)"
// @Param end_time query string false "结束时间 (2025-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Expense{})

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.StartTime != "" {
		if startTime, err := time.ParseInLocation("2006-01-02", req.StartTime, h.loc); err == nil {
			query = query.Where("record_time >= ?", startTime)
		}
	}
	if req.EndTime != "" {
		if endTime, err := time.ParseInLocation("2006-01-02", req.EndTime, h.loc); err == nil {
			// 包含结束日期当天
			endTime = endTime.Add(24*time.Hour - time.Second)
			query = query.Where("record_time <= ?", endTime)
		}
	}

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("record_time DESC").Offset(offset).Limit(req.PageSize).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// ExpenseStatisticsResponse 消费统计响应
type ExpenseStatisticsResponse struct {
	Today         service.ExpenseDaySummary `json:"today"`
	MonthTotal    decimal.Decimal           `json:"month_total"`
	CategoryStats []service.CategoryStat    `json:"category_stats"`
	Year          int                       `json:"year"`
	Month         int                       `json:"month"`
}

// GetStatistics 获取消费统计
// @Summary 获取消费统计
// @Description 今日合计/笔数、指定年月（默认当月）的总额与按类别统计
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param year_month query string false "年月（格式：2025-01，默认当月）"
// @Success 200 {object} Response{data=ExpenseStatisticsResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/statistics [get]
func (h *ExpenseHandler) GetStatistics(c *gin.Context) {
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

	// 读失败降级为空列表，界面照常渲染
	var expenses []models.Expense
	_ = database.DB.Find(&expenses).Error

	Success(c, ExpenseStatisticsResponse{
		Today:         service.DailyExpenseSummary(expenses, now, h.loc),
		MonthTotal:    service.MonthlyExpenseTotal(expenses, year, month, h.loc),
		CategoryStats: service.MonthlyCategoryStats(expenses, year, month, h.loc),
		Year:          year,
		Month:         int(month),
	})
}

// GetCategories 获取消费类别列表
// @Summary 获取消费类别列表
// @Description 获取所有可用的消费类别，按排序字段升序
// @Tags 消费记录
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	var list []models.ExpenseCategory
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
