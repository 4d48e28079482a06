package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"lifelog/database"
	"lifelog/models"
	"lifelog/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	loc      *time.Location
	settings *service.SettingsService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(loc *time.Location) *ExportHandler {
	return &ExportHandler{
		loc:      loc,
		settings: service.NewSettingsService(database.GetDB()),
	}
}

// parseRange 解析导出的时间范围参数
func (h *ExportHandler) parseRange(c *gin.Context) (time.Time, time.Time, string, string, bool) {
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")

	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始时间和结束时间")
		return time.Time{}, time.Time{}, "", "", false
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, h.loc)
	if err != nil {
		BadRequest(c, "开始时间格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}

	end, err := time.ParseInLocation("2006-01-02", endStr, h.loc)
	if err != nil {
		BadRequest(c, "结束时间格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}
	end = end.Add(24*time.Hour - time.Second)

	return start, end, startStr, endStr, true
}

// ExportCSV 导出开销记录为 CSV
// @Summary 导出开销记录
// @Description 根据时间范围导出开销记录为 CSV 文件
// @Tags 导出
// @Accept json
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	start, end, startStr, endStr, ok := h.parseRange(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("record_time >= ? AND record_time <= ?", start, end).
		Order("record_time DESC").
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "金额", "类别", "支付方式", "备注", "冲动消费", "记录时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, expense := range expenses {
		impulsive := "否"
		if expense.Impulsive {
			impulsive = "是"
		}
		row := []string{
			fmt.Sprintf("%d", expense.ID),
			expense.Amount.StringFixed(2),
			expense.Category,
			expense.PaymentMethod,
			expense.Note,
			impulsive,
			expense.RecordTime.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.csv", startStr, endStr)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出全量工作簿
// @Summary 导出全量工作簿
// @Description 把所有日志导出为一个 Excel 工作簿，tab 布局与导入接口一致，
// @Description 导出的文件可以原样再导入
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 文件"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "生成失败"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	h.writeMoneySheet(f, headerStyle, dataStyle)
	h.writeNutritionSheet(f, headerStyle, dataStyle)
	h.writeGymSheet(f, headerStyle, dataStyle)
	h.writeWeightSheet(f, headerStyle, dataStyle)
	h.writeProductivitySheet(f, headerStyle, dataStyle)
	h.writeSettingsSheet(f, headerStyle, dataStyle)

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("lifelog_%s.xlsx", time.Now().In(h.loc).Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

// newSheet 创建一个 tab 并写好表头
func newSheet(f *excelize.File, name string, headers []string, headerStyle int, widths []float64) {
	f.NewSheet(name)
	for i, w := range widths {
		col := string(rune('A' + i))
		f.SetColWidth(name, col, col, w)
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(name, cell, header)
		f.SetCellStyle(name, cell, cell, headerStyle)
	}
}

// Money tab：时间, 金额, 类别, 支付方式, 备注, 冲动
func (h *ExportHandler) writeMoneySheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetMoney,
		[]string{"时间", "金额", "类别", "支付方式", "备注", "冲动"},
		headerStyle, []float64{20, 12, 12, 12, 30, 8})

	var expenses []models.Expense
	_ = database.DB.Order("record_time ASC").Find(&expenses).Error

	total := decimal.Zero
	for i, e := range expenses {
		row := i + 2
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("A%d", row), e.RecordTime.In(h.loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("B%d", row), e.Amount.StringFixed(2))
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("C%d", row), e.Category)
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("D%d", row), e.PaymentMethod)
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("E%d", row), e.Note)
		f.SetCellValue(service.SheetMoney, fmt.Sprintf("F%d", row), boolCell(e.Impulsive))
		f.SetCellStyle(service.SheetMoney, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
		total = total.Add(e.Amount)
	}

	// 汇总行
	summaryRow := len(expenses) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellValue(service.SheetMoney, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(service.SheetMoney, fmt.Sprintf("B%d", summaryRow), total.StringFixed(2))
	f.SetCellValue(service.SheetMoney, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(expenses)))
	f.MergeCell(service.SheetMoney, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(service.SheetMoney, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)
}

// Nutrition tab：时间, 名称, 卡路里, 蛋白, 碳水, 脂肪, 来源
func (h *ExportHandler) writeNutritionSheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetNutrition,
		[]string{"时间", "名称", "卡路里", "蛋白(g)", "碳水(g)", "脂肪(g)", "来源"},
		headerStyle, []float64{20, 25, 10, 10, 10, 10, 12})

	var meals []models.Meal
	_ = database.DB.Order("record_time ASC").Find(&meals).Error

	for i, m := range meals {
		row := i + 2
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("A%d", row), m.RecordTime.In(h.loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("B%d", row), m.Name)
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("C%d", row), m.Calories)
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("D%d", row), m.ProteinG)
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("E%d", row), m.CarbsG)
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("F%d", row), m.FatG)
		f.SetCellValue(service.SheetNutrition, fmt.Sprintf("G%d", row), m.Source)
		f.SetCellStyle(service.SheetNutrition, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
	}
}

// Gym tab：时间, 课表, 动作, 组号, 重量, 次数, 备注
func (h *ExportHandler) writeGymSheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetGym,
		[]string{"时间", "课表", "动作", "组号", "重量", "次数", "备注"},
		headerStyle, []float64{20, 15, 20, 8, 10, 10, 25})

	var sets []models.WorkoutSet
	_ = database.DB.Order("record_time ASC, set_number ASC").Find(&sets).Error

	for i, s := range sets {
		row := i + 2
		f.SetCellValue(service.SheetGym, fmt.Sprintf("A%d", row), s.RecordTime.In(h.loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(service.SheetGym, fmt.Sprintf("B%d", row), s.Program)
		f.SetCellValue(service.SheetGym, fmt.Sprintf("C%d", row), s.Exercise)
		f.SetCellValue(service.SheetGym, fmt.Sprintf("D%d", row), s.SetNumber)
		f.SetCellValue(service.SheetGym, fmt.Sprintf("E%d", row), s.Weight)
		f.SetCellValue(service.SheetGym, fmt.Sprintf("F%d", row), s.Reps)
		f.SetCellValue(service.SheetGym, fmt.Sprintf("G%d", row), s.Note)
		f.SetCellStyle(service.SheetGym, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
	}
}

// Weight tab：时间, 体重(kg)
func (h *ExportHandler) writeWeightSheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetWeight,
		[]string{"时间", "体重(kg)"},
		headerStyle, []float64{20, 12})

	var weights []models.Weight
	_ = database.DB.Order("record_time ASC").Find(&weights).Error

	for i, w := range weights {
		row := i + 2
		f.SetCellValue(service.SheetWeight, fmt.Sprintf("A%d", row), w.RecordTime.In(h.loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(service.SheetWeight, fmt.Sprintf("B%d", row), w.WeightKg)
		f.SetCellStyle(service.SheetWeight, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), dataStyle)
	}
}

// Productivity tab：时间, 读书, 整理, 反思
func (h *ExportHandler) writeProductivitySheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetProductivity,
		[]string{"时间", "读书", "整理", "反思"},
		headerStyle, []float64{20, 8, 8, 40})

	var habits []models.Habit
	_ = database.DB.Order("record_time ASC").Find(&habits).Error

	for i, hb := range habits {
		row := i + 2
		f.SetCellValue(service.SheetProductivity, fmt.Sprintf("A%d", row), hb.RecordTime.In(h.loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(service.SheetProductivity, fmt.Sprintf("B%d", row), boolCell(hb.ReadBook))
		f.SetCellValue(service.SheetProductivity, fmt.Sprintf("C%d", row), boolCell(hb.TidiedHome))
		f.SetCellValue(service.SheetProductivity, fmt.Sprintf("D%d", row), hb.Reflection)
		f.SetCellStyle(service.SheetProductivity, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), dataStyle)
	}
}

// Settings tab：键, 值（仅导出备份用，导入时忽略）
func (h *ExportHandler) writeSettingsSheet(f *excelize.File, headerStyle, dataStyle int) {
	newSheet(f, service.SheetSettings,
		[]string{"键", "值"},
		headerStyle, []float64{25, 25})

	settings := h.settings.Load()
	row := 2
	for _, key := range models.SettingKeys() {
		f.SetCellValue(service.SheetSettings, fmt.Sprintf("A%d", row), key)
		f.SetCellValue(service.SheetSettings, fmt.Sprintf("B%d", row), settings[key])
		f.SetCellStyle(service.SheetSettings, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), dataStyle)
		row++
	}
}

func boolCell(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
