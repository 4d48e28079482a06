package api

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lifelog/config"
	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MealHandler 饮食记录处理器
type MealHandler struct {
	loc      *time.Location
	vision   *service.VisionClient
	settings *service.SettingsService
	photoDir string
}

// NewMealHandler 创建饮食记录处理器
func NewMealHandler(cfg *config.Config) *MealHandler {
	return &MealHandler{
		loc:      cfg.Location(),
		vision:   service.NewVisionClient(&cfg.AI),
		settings: service.NewSettingsService(database.GetDB()),
		photoDir: cfg.AI.PhotoDir,
	}
}

// CreateMealRequest 创建饮食记录请求
// 零卡路里条目（如黑咖啡）合法；负值会被拒绝
type CreateMealRequest struct {
	Name      string  `json:"name" binding:"required" example:"烤鸡胸沙拉"`
	Calories  int     `json:"calories" example:"565"`
	ProteinG  float64 `json:"protein_g" example:"42"`
	CarbsG    float64 `json:"carbs_g" example:"52"`
	FatG      float64 `json:"fat_g" example:"21"`
	Source    string  `json:"source" example:"manual"`
	PhotoPath string  `json:"photo_path" example:""`
}

// Create 创建饮食记录
// @Summary 创建饮食记录
// @Description 追加一条饮食记录（手动录入或确认AI分析结果后落库）
// @Tags 饮食
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMealRequest true "饮食记录信息"
// @Success 200 {object} Response{data=models.Meal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/meals [post]
func (h *MealHandler) Create(c *gin.Context) {
	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.Source == "" {
		req.Source = models.MealSourceManual
	}

	meal, err := service.NewMeal(req.Name, req.Calories, req.ProteinG, req.CarbsG, req.FatG, req.Source, time.Now().In(h.loc))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	meal.PhotoPath = strings.TrimSpace(req.PhotoPath)

	if err := database.DB.Create(&meal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建饮食记录失败"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "创建成功", meal)
}

// AnalyzeMealResponse AI分析响应
type AnalyzeMealResponse struct {
	Name       string                   `json:"name"`
	Estimate   service.MealEstimate     `json:"estimate"`   // 模型原始估算
	Calibrated service.CalibratedMacros `json:"calibrated"` // 校准后的自洽四元组
	Source     string                   `json:"source"`
	PhotoPath  string                   `json:"photo_path,omitempty"`
}

// Analyze AI营养分析
// @Summary AI营养分析
// @Description 上传食物照片（multipart 字段 photo）和/或文字备注（字段 note）。
// @Description 调用视觉模型估算营养，再与宏量推导卡路里做校准；结果不落库，
// @Description 由客户端确认后调用创建接口保存。
// @Tags 饮食
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file false "食物照片"
// @Param note formData string false "补充说明，如：无油，两个鸡蛋"
// @Success 200 {object} Response{data=AnalyzeMealResponse} "分析成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 502 {object} Response "推理服务失败"
// @Router /api/v1/meals/analyze [post]
func (h *MealHandler) Analyze(c *gin.Context) {
	note := strings.TrimSpace(c.PostForm("note"))

	var (
		estimate  service.MealEstimate
		source    string
		photoPath string
		err       error
	)

	file, header, fileErr := c.Request.FormFile("photo")
	if fileErr == nil {
		defer file.Close()
		image, readErr := io.ReadAll(file)
		if readErr != nil {
			BadRequest(c, "读取照片失败")
			return
		}
		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		estimate, err = h.vision.AnalyzeMealPhoto(c.Request.Context(), image, mimeType, note)
		source = models.MealSourceAIPhoto
		if err == nil {
			photoPath = h.savePhoto(image, header.Filename)
		}
	} else {
		if note == "" {
			BadRequest(c, "请上传照片或填写文字描述")
			return
		}
		estimate, err = h.vision.AnalyzeMealText(c.Request.Context(), note)
		source = models.MealSourceAIText
	}

	if err != nil {
		if errors.Is(err, service.ErrAnalysisFailed) {
			Error(c, 502, SafeErrorMessage(err, "AI分析失败，请稍后重试"))
			return
		}
		InternalError(c, SafeErrorMessage(err, "AI分析失败"))
		return
	}

	calibrated := service.Calibrate(estimate.EstimatedCalories, estimate.ProteinG, estimate.CarbsG, estimate.FatG)

	Success(c, AnalyzeMealResponse{
		Name:       estimate.Name,
		Estimate:   estimate,
		Calibrated: calibrated,
		Source:     source,
		PhotoPath:  photoPath,
	})
}

// savePhoto 照片落盘（photo_dir 配置为空时跳过）；失败只跳过，不影响分析结果
func (h *MealHandler) savePhoto(image []byte, original string) string {
	if h.photoDir == "" {
		return ""
	}
	if err := os.MkdirAll(h.photoDir, 0o755); err != nil {
		return ""
	}
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join(h.photoDir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return ""
	}
	return path
}

// NutritionTodayResponse 今日营养响应
type NutritionTodayResponse struct {
	Totals   service.NutritionTotals  `json:"totals"`
	Targets  service.NutritionTargets `json:"targets"`
	Progress service.TargetProgress   `json:"progress"`
}

// Today 获取今日营养汇总
// @Summary 获取今日营养汇总
// @Description 今日饮食合计、目标值与逐项完成度（完成度钳制在 [0,1]）
// @Tags 饮食
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=NutritionTodayResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/meals/today [get]
func (h *MealHandler) Today(c *gin.Context) {
	now := time.Now().In(h.loc)

	// 读失败降级为空列表
	var meals []models.Meal
	_ = database.DB.Find(&meals).Error

	totals := service.DailyNutritionTotals(meals, now, h.loc)
	targets := service.Targets(h.settings.Load())

	Success(c, NutritionTodayResponse{
		Totals:   totals,
		Targets:  targets,
		Progress: service.DailyTargetProgress(totals, targets),
	})
}

// ListMeals 获取饮食记录列表
// @Summary 获取饮食记录列表
// @Tags 饮食
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Meal}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/meals [get]
func (h *MealHandler) ListMeals(c *gin.Context) {
	page, pageSize := parsePagination(c)

	query := database.DB.Model(&models.Meal{})
	var total int64
	query.Count(&total)

	var meals []models.Meal
	if err := query.Order("record_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&meals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: meals})
}
