package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense 消费记录模型
// 记录一经写入不再修改（追加式日志），RecordTime 由系统时钟打点
type Expense struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category      string          `json:"category" gorm:"size:50;not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:20;not null"`
	Note          string          `json:"note" gorm:"size:255"`
	Impulsive     bool            `json:"impulsive" gorm:"default:false"`
	RecordTime    time.Time       `json:"record_time" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// 支付方式常量
const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentTransfer   = "transfer"
)

// GetPaymentMethods 获取所有支付方式
func GetPaymentMethods() []string {
	return []string{
		PaymentCash,
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentTransfer,
	}
}

// ExpenseCategory 消费类别（启动时播种默认值，可后续维护）
type ExpenseCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// 默认消费类别
const (
	CategoryFood          = "餐饮"
	CategoryTransport     = "交通"
	CategoryShopping      = "购物"
	CategoryEntertainment = "娱乐"
	CategoryHealth        = "健康"
	CategoryHousing       = "住房"
	CategoryOther         = "其他"
)

// GetDefaultCategories 获取默认消费类别
func GetDefaultCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealth,
		CategoryHousing,
		CategoryOther,
	}
}
