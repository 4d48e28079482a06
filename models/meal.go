package models

import (
	"time"

	"gorm.io/gorm"
)

// 饮食记录来源
const (
	MealSourceAIPhoto = "ai_photo" // 拍照 + 视觉模型估算
	MealSourceAIText  = "ai_text"  // 文字描述 + 模型估算
	MealSourceManual  = "manual"   // 手动录入
)

// Meal 饮食记录模型
// Calories 恒等于校准后宏量的 Atwater 合计（蛋白*4 + 碳水*4 + 脂肪*9）
type Meal struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"size:100;not null"`
	Calories   int            `json:"calories" gorm:"not null"`
	ProteinG   float64        `json:"protein_g" gorm:"not null"`
	CarbsG     float64        `json:"carbs_g" gorm:"not null"`
	FatG       float64        `json:"fat_g" gorm:"not null"`
	Source     string         `json:"source" gorm:"size:20;not null;default:manual"`
	PhotoPath  string         `json:"photo_path,omitempty" gorm:"size:255"`
	RecordTime time.Time      `json:"record_time" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Meal) TableName() string {
	return "meals"
}
