package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"lifelog/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// 工作簿 tab 名，与导出保持一致（沿用电子表格时代的命名）
const (
	SheetMoney        = "Money"
	SheetNutrition    = "Nutrition"
	SheetGym          = "Gym"
	SheetWeight       = "Weight"
	SheetProductivity = "Productivity"
	SheetSettings     = "Settings"
)

// ImportResult 各 tab 导入/跳过的行数
type ImportResult struct {
	Imported map[string]int `json:"imported"`
	Skipped  map[string]int `json:"skipped"`
}

// Importer Excel 工作簿导入。每个字段都按"可能需要数值/日期转换的字符串"
// 对待，单行解析失败只跳过该行，绝不让整个 tab 的导入失败。
type Importer struct {
	db  *gorm.DB
	loc *time.Location
}

// NewImporter 构造 Importer
func NewImporter(gdb *gorm.DB, loc *time.Location) *Importer {
	return &Importer{db: gdb, loc: loc}
}

// ImportWorkbook 读取工作簿并把各 tab 追加进对应日志。
// 缺失的 tab 直接跳过；Settings tab 不参与导入（设置走专门的保存接口）。
func (im *Importer) ImportWorkbook(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("读取工作簿失败: %w", err)
	}
	defer f.Close()

	result := ImportResult{
		Imported: make(map[string]int),
		Skipped:  make(map[string]int),
	}

	im.importSheet(f, SheetMoney, &result, im.parseExpenseRow)
	im.importSheet(f, SheetNutrition, &result, im.parseMealRow)
	im.importSheet(f, SheetGym, &result, im.parseWorkoutRow)
	im.importSheet(f, SheetWeight, &result, im.parseWeightRow)
	im.importSheet(f, SheetProductivity, &result, im.parseHabitRow)

	return result, nil
}

// rowParser 解析一行并落库；返回 error 表示该行被跳过
type rowParser func(cells []string) error

// importSheet 逐行导入一个 tab，首行视为表头
func (im *Importer) importSheet(f *excelize.File, sheet string, result *ImportResult, parse rowParser) {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return
	}
	for _, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		if err := parse(cells); err != nil {
			result.Skipped[sheet]++
			continue
		}
		result.Imported[sheet]++
	}
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell 安全取列，越界返回空串
func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// parseTimestamp 解析行内时间戳，无法解析的行被调用方跳过
func (im *Importer) parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, im.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析时间戳: %q", raw)
}

func parseBoolCell(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "是":
		return true
	}
	return false
}

// Money tab：时间, 金额, 类别, 支付方式, 备注, 冲动
func (im *Importer) parseExpenseRow(cells []string) error {
	at, err := im.parseTimestamp(cell(cells, 0))
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(cell(cells, 1), ",", "."))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("无效金额")
	}
	category := cell(cells, 2)
	if category == "" {
		return fmt.Errorf("类别为空")
	}
	method := cell(cells, 3)
	if method == "" {
		method = models.PaymentCash
	}
	expense := models.Expense{
		Amount:        amount,
		Category:      category,
		PaymentMethod: method,
		Note:          cell(cells, 4),
		Impulsive:     parseBoolCell(cell(cells, 5)),
		RecordTime:    at,
	}
	return im.db.Create(&expense).Error
}

// Nutrition tab：时间, 名称, 卡路里, 蛋白, 碳水, 脂肪, 来源
func (im *Importer) parseMealRow(cells []string) error {
	at, err := im.parseTimestamp(cell(cells, 0))
	if err != nil {
		return err
	}
	name := cell(cells, 1)
	if name == "" {
		return fmt.Errorf("名称为空")
	}
	calories, err := strconv.Atoi(cell(cells, 2))
	if err != nil || calories < 0 {
		return fmt.Errorf("无效卡路里")
	}
	parse := func(i int) (float64, error) {
		return strconv.ParseFloat(strings.ReplaceAll(cell(cells, i), ",", "."), 64)
	}
	p, err := parse(3)
	if err != nil || p < 0 {
		return fmt.Errorf("无效蛋白")
	}
	c, err := parse(4)
	if err != nil || c < 0 {
		return fmt.Errorf("无效碳水")
	}
	fat, err := parse(5)
	if err != nil || fat < 0 {
		return fmt.Errorf("无效脂肪")
	}
	source := cell(cells, 6)
	switch source {
	case models.MealSourceAIPhoto, models.MealSourceAIText, models.MealSourceManual:
	default:
		source = models.MealSourceManual
	}
	meal := models.Meal{
		Name: name, Calories: calories,
		ProteinG: p, CarbsG: c, FatG: fat,
		Source: source, RecordTime: at,
	}
	return im.db.Create(&meal).Error
}

// Gym tab：时间, 课表, 动作, 组号, 重量, 次数, 备注
func (im *Importer) parseWorkoutRow(cells []string) error {
	at, err := im.parseTimestamp(cell(cells, 0))
	if err != nil {
		return err
	}
	program, exercise := cell(cells, 1), cell(cells, 2)
	if program == "" || exercise == "" {
		return fmt.Errorf("课表或动作为空")
	}
	setNumber, err := strconv.Atoi(cell(cells, 3))
	if err != nil || setNumber < 1 {
		return fmt.Errorf("无效组号")
	}
	weight, reps := cell(cells, 4), cell(cells, 5)
	if weight == "" || reps == "" {
		return fmt.Errorf("重量或次数为空")
	}
	set := models.WorkoutSet{
		Program: program, Exercise: exercise, SetNumber: setNumber,
		Weight: weight, Reps: reps, Note: cell(cells, 6), RecordTime: at,
	}
	return im.db.Create(&set).Error
}

// Weight tab：时间, 体重(kg)
func (im *Importer) parseWeightRow(cells []string) error {
	at, err := im.parseTimestamp(cell(cells, 0))
	if err != nil {
		return err
	}
	kg, err := strconv.ParseFloat(strings.ReplaceAll(cell(cells, 1), ",", "."), 64)
	if err != nil || kg <= 0 {
		return fmt.Errorf("无效体重")
	}
	weight := models.Weight{WeightKg: kg, RecordTime: at}
	return im.db.Create(&weight).Error
}

// Productivity tab：时间, 读书, 整理, 反思
func (im *Importer) parseHabitRow(cells []string) error {
	at, err := im.parseTimestamp(cell(cells, 0))
	if err != nil {
		return err
	}
	habit := models.Habit{
		ReadBook:   parseBoolCell(cell(cells, 1)),
		TidiedHome: parseBoolCell(cell(cells, 2)),
		Reflection: cell(cells, 3),
		RecordTime: at,
	}
	return im.db.Create(&habit).Error
}
