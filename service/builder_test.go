package service

import (
	"testing"
	"time"

	"lifelog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)

func TestNewExpense(t *testing.T) {
	e, err := NewExpense(decimal.NewFromFloat(42.50), " 餐饮 ", models.PaymentCash, " 午餐 ", true, testNow)
	require.NoError(t, err)
	assert.Equal(t, "餐饮", e.Category)
	assert.Equal(t, "午餐", e.Note)
	assert.True(t, e.Impulsive)
	assert.True(t, e.RecordTime.Equal(testNow))
}

func TestNewExpense_Invalid(t *testing.T) {
	_, err := NewExpense(decimal.Zero, "餐饮", models.PaymentCash, "", false, testNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewExpense(decimal.NewFromInt(-10), "餐饮", models.PaymentCash, "", false, testNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewExpense(decimal.NewFromInt(10), "  ", models.PaymentCash, "", false, testNow)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = NewExpense(decimal.NewFromInt(10), "餐饮", "bitcoin", "", false, testNow)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestNewMeal(t *testing.T) {
	m, err := NewMeal(" 鸡胸沙拉 ", 420, 38, 20, 18, models.MealSourceAIPhoto, testNow)
	require.NoError(t, err)
	assert.Equal(t, "鸡胸沙拉", m.Name)
	assert.Equal(t, 420, m.Calories)
	assert.Equal(t, models.MealSourceAIPhoto, m.Source)
}

func TestNewMeal_ZeroCaloriesAllowed(t *testing.T) {
	// 黑咖啡这种零卡条目是合法的
	m, err := NewMeal("黑咖啡", 0, 0, 0, 0, models.MealSourceManual, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Calories)
}

func TestNewMeal_Invalid(t *testing.T) {
	_, err := NewMeal("  ", 100, 1, 1, 1, models.MealSourceManual, testNow)
	assert.ErrorIs(t, err, ErrInvalidMealName)

	_, err = NewMeal("x", -1, 1, 1, 1, models.MealSourceManual, testNow)
	assert.ErrorIs(t, err, ErrInvalidNutrition)

	_, err = NewMeal("x", 100, 1, 1, -1, models.MealSourceManual, testNow)
	assert.ErrorIs(t, err, ErrInvalidNutrition)

	_, err = NewMeal("x", 100, 1, 1, 1, "telepathy", testNow)
	assert.ErrorIs(t, err, ErrInvalidMealSource)
}

func TestNewWeight(t *testing.T) {
	w, err := NewWeight(78.4, testNow)
	require.NoError(t, err)
	assert.Equal(t, 78.4, w.WeightKg)

	_, err = NewWeight(0, testNow)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, err = NewWeight(-1, testNow)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestBuildWorkoutSession(t *testing.T) {
	inputs := []SetInput{
		{Weight: "60", Reps: "8"},
		{Weight: "62,5", Reps: "6"},
		{Weight: "65", Reps: "5"},
	}

	sets, err := BuildWorkoutSession(" PPL ", " 卧推 ", " 状态一般 ", inputs, testNow)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	for i, s := range sets {
		assert.Equal(t, "PPL", s.Program)
		assert.Equal(t, "卧推", s.Exercise)
		assert.Equal(t, i+1, s.SetNumber)
		assert.Equal(t, "状态一般", s.Note)
		assert.True(t, s.RecordTime.Equal(testNow))
	}
	// 逗号小数原样保留
	assert.Equal(t, "62,5", sets[1].Weight)
}

func TestBuildWorkoutSession_DropsIncompleteSets(t *testing.T) {
	inputs := []SetInput{
		{Weight: "60", Reps: "8"},
		{Weight: "", Reps: "8"},   // 缺重量，丢弃
		{Weight: "65", Reps: " "}, // 缺次数，丢弃
		{Weight: "70", Reps: "3"},
	}

	sets, err := BuildWorkoutSession("PPL", "卧推", "", inputs, testNow)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	// 保留的组重新编号为连续的 1..N
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, "60", sets[0].Weight)
	assert.Equal(t, 2, sets[1].SetNumber)
	assert.Equal(t, "70", sets[1].Weight)
}

func TestBuildWorkoutSession_NothingToSave(t *testing.T) {
	_, err := BuildWorkoutSession("PPL", "卧推", "", []SetInput{
		{Weight: "", Reps: "8"},
		{Weight: "60", Reps: ""},
	}, testNow)
	assert.ErrorIs(t, err, ErrNothingToSave)

	_, err = BuildWorkoutSession("PPL", "卧推", "", nil, testNow)
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestBuildWorkoutSession_Invalid(t *testing.T) {
	inputs := []SetInput{{Weight: "60", Reps: "8"}}

	_, err := BuildWorkoutSession("  ", "卧推", "", inputs, testNow)
	assert.ErrorIs(t, err, ErrInvalidProgram)

	_, err = BuildWorkoutSession("PPL", "  ", "", inputs, testNow)
	assert.ErrorIs(t, err, ErrInvalidExercise)
}
