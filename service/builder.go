package service

import (
	"errors"
	"strings"
	"time"

	"lifelog/models"

	"github.com/shopspring/decimal"
)

// 校验错误（用户输入问题，调用方转为 400，不落库）
var (
	// ErrInvalidAmount 金额必须为正
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidCategory 类别不能为空
	ErrInvalidCategory = errors.New("category is required")
	// ErrInvalidPaymentMethod 未知支付方式
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	// ErrInvalidMealName 饮食名称不能为空
	ErrInvalidMealName = errors.New("meal name is required")
	// ErrInvalidNutrition 营养数值不能为负（零卡路里条目合法，如黑咖啡）
	ErrInvalidNutrition = errors.New("nutrition values must not be negative")
	// ErrInvalidMealSource 未知饮食记录来源
	ErrInvalidMealSource = errors.New("unknown meal source")
	// ErrInvalidWeight 体重必须为正
	ErrInvalidWeight = errors.New("body weight must be positive")
	// ErrInvalidProgram 训练课表不能为空
	ErrInvalidProgram = errors.New("workout program is required")
	// ErrInvalidExercise 训练动作不能为空
	ErrInvalidExercise = errors.New("exercise name is required")
	// ErrNothingToSave 没有一组完整的重量+次数，session 拒绝保存
	ErrNothingToSave = errors.New("no complete sets to save")
)

// 构建器负责把表单输入整形为存储行，并用固定时区的当前时刻打点。
// 时间戳永远由构建器分配，绝不接受调用方伪造。

// NewExpense 构建一条消费记录
func NewExpense(amount decimal.Decimal, category, paymentMethod, note string, impulsive bool, now time.Time) (models.Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.Expense{}, ErrInvalidAmount
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return models.Expense{}, ErrInvalidCategory
	}
	valid := false
	for _, m := range models.GetPaymentMethods() {
		if m == paymentMethod {
			valid = true
			break
		}
	}
	if !valid {
		return models.Expense{}, ErrInvalidPaymentMethod
	}
	return models.Expense{
		Amount:        amount,
		Category:      category,
		PaymentMethod: paymentMethod,
		Note:          strings.TrimSpace(note),
		Impulsive:     impulsive,
		RecordTime:    now,
	}, nil
}

// NewMeal 构建一条饮食记录。零卡路里条目合法，负值拒绝。
func NewMeal(name string, calories int, proteinG, carbsG, fatG float64, source string, now time.Time) (models.Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Meal{}, ErrInvalidMealName
	}
	if calories < 0 || proteinG < 0 || carbsG < 0 || fatG < 0 {
		return models.Meal{}, ErrInvalidNutrition
	}
	switch source {
	case models.MealSourceAIPhoto, models.MealSourceAIText, models.MealSourceManual:
	default:
		return models.Meal{}, ErrInvalidMealSource
	}
	return models.Meal{
		Name:       name,
		Calories:   calories,
		ProteinG:   proteinG,
		CarbsG:     carbsG,
		FatG:       fatG,
		Source:     source,
		RecordTime: now,
	}, nil
}

// NewWeight 构建一条体重记录
func NewWeight(weightKg float64, now time.Time) (models.Weight, error) {
	if weightKg <= 0 {
		return models.Weight{}, ErrInvalidWeight
	}
	return models.Weight{WeightKg: weightKg, RecordTime: now}, nil
}

// NewHabit 构建一条习惯打卡记录
func NewHabit(readBook, tidiedHome bool, reflection string, now time.Time) models.Habit {
	return models.Habit{
		ReadBook:   readBook,
		TidiedHome: tidiedHome,
		Reflection: strings.TrimSpace(reflection),
		RecordTime: now,
	}
}

// SetInput 一组训练的原始输入
type SetInput struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// BuildWorkoutSession 把一次训练提交整形为若干训练组记录。
//
// 只有重量和次数都非空（去空白后）的组才会保留，缺一项的组静默丢弃；
// 一组都不剩时整个 session 拒绝保存（ErrNothingToSave），不写空批次。
// 保留的组重新编号为连续的 1..N，全部共享同一时间戳和备注。
func BuildWorkoutSession(program, exercise, note string, inputs []SetInput, now time.Time) ([]models.WorkoutSet, error) {
	program = strings.TrimSpace(program)
	if program == "" {
		return nil, ErrInvalidProgram
	}
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return nil, ErrInvalidExercise
	}
	note = strings.TrimSpace(note)

	var sets []models.WorkoutSet
	for _, in := range inputs {
		weight := strings.TrimSpace(in.Weight)
		reps := strings.TrimSpace(in.Reps)
		if weight == "" || reps == "" {
			continue
		}
		sets = append(sets, models.WorkoutSet{
			Program:    program,
			Exercise:   exercise,
			SetNumber:  len(sets) + 1,
			Weight:     weight,
			Reps:       reps,
			Note:       note,
			RecordTime: now,
		})
	}
	if len(sets) == 0 {
		return nil, ErrNothingToSave
	}
	return sets, nil
}
