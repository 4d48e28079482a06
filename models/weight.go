package models

import (
	"time"

	"gorm.io/gorm"
)

// Weight 体重记录模型
type Weight struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	WeightKg   float64        `json:"weight_kg" gorm:"not null"`
	RecordTime time.Time      `json:"record_time" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Weight) TableName() string {
	return "weights"
}
