package service

import (
	"strconv"
	"time"

	"lifelog/models"

	"gorm.io/gorm"
)

// SettingsService 设置读写。存储层保持整表替换语义（与电子表格时代一致），
// API 层写入前先用当前值补全缺失键，避免部分提交抹掉无关键。
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService 构造 SettingsService
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

// Load 读取全部设置。缺失的键回落到默认值；
// 读库失败时整体降级为默认值，界面照常渲染。
func (s *SettingsService) Load() map[string]string {
	values := models.DefaultSettings()
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return values
	}
	for _, row := range rows {
		if _, known := values[row.Key]; known {
			values[row.Key] = row.Value
		}
	}
	return values
}

// Save 整表替换保存设置。updates 中未出现的键沿用当前值。
func (s *SettingsService) Save(updates map[string]string) error {
	merged := s.Load()
	for key, value := range updates {
		if _, known := merged[key]; known {
			merged[key] = value
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Setting{}).Error; err != nil {
			return err
		}
		rows := make([]models.Setting, 0, len(merged))
		for key, value := range merged {
			rows = append(rows, models.Setting{Key: key, Value: value})
		}
		return tx.Create(&rows).Error
	})
}

// Targets 从设置解析每日营养目标，坏值回落到对应默认值
func Targets(settings map[string]string) NutritionTargets {
	defaults := models.DefaultSettings()
	atoi := func(key string) int {
		v, err := strconv.Atoi(settings[key])
		if err != nil {
			v, _ = strconv.Atoi(defaults[key])
		}
		return v
	}
	atof := func(key string) float64 {
		v, err := strconv.ParseFloat(settings[key], 64)
		if err != nil {
			v, _ = strconv.ParseFloat(defaults[key], 64)
		}
		return v
	}
	return NutritionTargets{
		Calories: atoi(models.SettingTargetCalories),
		ProteinG: atof(models.SettingTargetProteinG),
		CarbsG:   atof(models.SettingTargetCarbsG),
		FatG:     atof(models.SettingTargetFatG),
	}
}

// QuitSmokingTime 从设置解析戒烟时刻；未设置或无法解析时返回 nil
func QuitSmokingTime(settings map[string]string, loc *time.Location) *time.Time {
	raw := settings[models.SettingQuitSmokingAt]
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	return nil
}
