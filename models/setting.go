package models

import (
	"time"
)

// Setting 设置项（key -> value 平面映射，单例语义）
// 保存时整表替换；读取时缺失的键回落到默认值，绝不报错
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"size:50;not null;uniqueIndex"`
	Value     string    `json:"value" gorm:"size:255"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Setting) TableName() string {
	return "settings"
}

// 设置键
const (
	SettingTargetCalories = "target_calories"
	SettingTargetProteinG = "target_protein_g"
	SettingTargetCarbsG   = "target_carbs_g"
	SettingTargetFatG     = "target_fat_g"
	SettingQuitSmokingAt  = "quit_smoking_date" // 可为空：空串表示未设置
)

// SettingKeys 已知设置键的固定顺序（导出时使用）
func SettingKeys() []string {
	return []string{
		SettingTargetCalories,
		SettingTargetProteinG,
		SettingTargetCarbsG,
		SettingTargetFatG,
		SettingQuitSmokingAt,
	}
}

// DefaultSettings 每个键的默认值
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingTargetCalories: "2000",
		SettingTargetProteinG: "120",
		SettingTargetCarbsG:   "200",
		SettingTargetFatG:     "65",
		SettingQuitSmokingAt:  "",
	}
}
