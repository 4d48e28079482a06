package models

import (
	"time"

	"gorm.io/gorm"
)

// Habit 习惯打卡记录模型（每日生产力记录）
type Habit struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	ReadBook   bool           `json:"read_book" gorm:"default:false"`
	TidiedHome bool           `json:"tidied_home" gorm:"default:false"`
	Reflection string         `json:"reflection" gorm:"size:500"`
	RecordTime time.Time      `json:"record_time" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Habit) TableName() string {
	return "habits"
}
