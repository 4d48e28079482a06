package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkoutSet 训练组记录模型
// 同一次提交的所有组共享同一 RecordTime 和 Note（即一个 session）；
// SetNumber 在 (RecordTime, Exercise) 内从 1 连续递增。
// Weight/Reps 按用户输入原样存为字符串（小数分隔符可能是逗号），
// 聚合时再做数值解析，解析失败的记录仅从该次聚合中剔除。
type WorkoutSet struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Program    string         `json:"program" gorm:"size:50;index;not null"`
	Exercise   string         `json:"exercise" gorm:"size:100;index;not null"`
	SetNumber  int            `json:"set_number" gorm:"not null"`
	Weight     string         `json:"weight" gorm:"size:20;not null"`
	Reps       string         `json:"reps" gorm:"size:20;not null"`
	Note       string         `json:"note" gorm:"size:255"`
	RecordTime time.Time      `json:"record_time" gorm:"index;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (WorkoutSet) TableName() string {
	return "workout_sets"
}
