package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"lifelog/models"

	"github.com/shopspring/decimal"
)

// 历史聚合引擎：对追加式日志做"今日/本月/按动作取最近一次"的内存折叠。
// 所有函数都是纯函数，now 与时区显式传入，绝不读环境时钟。
// 时间戳为零值的记录视为脏数据，仅从当次聚合中静默剔除，不中断整体计算。

// sameDay 判断两个时刻在给定时区下是否落在同一个自然日
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// sameMonth 判断时刻在给定时区下是否落在指定年月
func sameMonth(t time.Time, year int, month time.Month, loc *time.Location) bool {
	tt := t.In(loc)
	return tt.Year() == year && tt.Month() == month
}

// NutritionTotals 当日营养合计
type NutritionTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Meals    int     `json:"meals"`
}

// DailyNutritionTotals 汇总 day 当天的饮食记录；空集合计为零值
func DailyNutritionTotals(meals []models.Meal, day time.Time, loc *time.Location) NutritionTotals {
	var totals NutritionTotals
	for _, m := range meals {
		if m.RecordTime.IsZero() || !sameDay(m.RecordTime, day, loc) {
			continue
		}
		totals.Calories += m.Calories
		totals.ProteinG += m.ProteinG
		totals.CarbsG += m.CarbsG
		totals.FatG += m.FatG
		totals.Meals++
	}
	return totals
}

// ExpenseDaySummary 当日开销合计与笔数
type ExpenseDaySummary struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DailyExpenseSummary 汇总 day 当天的消费记录
func DailyExpenseSummary(expenses []models.Expense, day time.Time, loc *time.Location) ExpenseDaySummary {
	summary := ExpenseDaySummary{Total: decimal.Zero}
	for _, e := range expenses {
		if e.RecordTime.IsZero() || !sameDay(e.RecordTime, day, loc) {
			continue
		}
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++
	}
	return summary
}

// MonthlyExpenseTotal 汇总指定年月的消费总额
func MonthlyExpenseTotal(expenses []models.Expense, year int, month time.Month, loc *time.Location) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.RecordTime.IsZero() || !sameMonth(e.RecordTime, year, month, loc) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// CategoryStat 按类别的消费统计
type CategoryStat struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// MonthlyCategoryStats 按类别汇总指定年月的消费，金额降序
func MonthlyCategoryStats(expenses []models.Expense, year int, month time.Month, loc *time.Location) []CategoryStat {
	byCat := make(map[string]*CategoryStat)
	for _, e := range expenses {
		if e.RecordTime.IsZero() || !sameMonth(e.RecordTime, year, month, loc) {
			continue
		}
		s, ok := byCat[e.Category]
		if !ok {
			s = &CategoryStat{Category: e.Category, Total: decimal.Zero}
			byCat[e.Category] = s
		}
		s.Total = s.Total.Add(e.Amount)
		s.Count++
	}
	stats := make([]CategoryStat, 0, len(byCat))
	for _, s := range byCat {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Total.Equal(stats[j].Total) {
			return stats[i].Total.GreaterThan(stats[j].Total)
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// MonthlyHabitCounts 指定年月内各习惯完成天数
type MonthlyHabitCounts struct {
	ReadBook   int `json:"read_book"`
	TidiedHome int `json:"tidied_home"`
	Entries    int `json:"entries"`
}

// HabitCountsForMonth 统计指定年月的习惯打卡
func HabitCountsForMonth(habits []models.Habit, year int, month time.Month, loc *time.Location) MonthlyHabitCounts {
	var counts MonthlyHabitCounts
	for _, h := range habits {
		if h.RecordTime.IsZero() || !sameMonth(h.RecordTime, year, month, loc) {
			continue
		}
		counts.Entries++
		if h.ReadBook {
			counts.ReadBook++
		}
		if h.TidiedHome {
			counts.TidiedHome++
		}
	}
	return counts
}

// SessionSummary 某个动作最近一次训练的摘要
type SessionSummary struct {
	Exercise string    `json:"exercise"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
	Sets     string    `json:"sets"`   // "S1: 60x8 | S2: 62,5x6" 形式
	Volume   float64   `json:"volume"` // Σ 重量*次数，数值解析失败的组不计入
}

// SetSeparator 组摘要的分隔符
const SetSeparator = " | "

// LatestSessionPerExercise 按动作取最近一次 session 的摘要。
//
// 先按 program 预过滤（防止同名动作跨课表串历史），再按动作分组；
// 每组内取最大时间戳，收齐共享该时间戳的所有组即为一个 session，
// 组内按 SetNumber 升序拼接摘要。不同动作之间的时间戳互不影响。
func LatestSessionPerExercise(sets []models.WorkoutSet, program string) map[string]SessionSummary {
	byExercise := make(map[string][]models.WorkoutSet)
	for _, s := range sets {
		if s.RecordTime.IsZero() {
			continue
		}
		if program != "" && s.Program != program {
			continue
		}
		byExercise[s.Exercise] = append(byExercise[s.Exercise], s)
	}

	result := make(map[string]SessionSummary, len(byExercise))
	for exercise, group := range byExercise {
		var latest time.Time
		for _, s := range group {
			if s.RecordTime.After(latest) {
				latest = s.RecordTime
			}
		}

		var session []models.WorkoutSet
		for _, s := range group {
			if s.RecordTime.Equal(latest) {
				session = append(session, s)
			}
		}
		sort.Slice(session, func(i, j int) bool {
			return session[i].SetNumber < session[j].SetNumber
		})

		parts := make([]string, 0, len(session))
		var volume float64
		for _, s := range session {
			parts = append(parts, fmt.Sprintf("S%d: %sx%s", s.SetNumber, s.Weight, s.Reps))
			w, werr := parseLocaleFloat(s.Weight)
			r, rerr := parseLocaleFloat(s.Reps)
			if werr == nil && rerr == nil {
				volume += w * r
			}
		}

		result[exercise] = SessionSummary{
			Exercise: exercise,
			Date:     latest,
			Note:     session[0].Note,
			Sets:     strings.Join(parts, SetSeparator),
			Volume:   volume,
		}
	}
	return result
}

// SessionInfo 一次训练 session 的概览
type SessionInfo struct {
	Program    string    `json:"program"`
	RecordTime time.Time `json:"record_time"`
	Note       string    `json:"note"`
	SetCount   int       `json:"set_count"`
	Exercises  []string  `json:"exercises"`
}

// RecentSessions 把共享 (RecordTime, Program) 的记录折叠为一个 session，
// 按时间降序返回前 limit 条
func RecentSessions(sets []models.WorkoutSet, limit int) []SessionInfo {
	type key struct {
		at      int64
		program string
	}
	byKey := make(map[key]*SessionInfo)
	for _, s := range sets {
		if s.RecordTime.IsZero() {
			continue
		}
		k := key{at: s.RecordTime.UnixNano(), program: s.Program}
		info, ok := byKey[k]
		if !ok {
			info = &SessionInfo{Program: s.Program, RecordTime: s.RecordTime, Note: s.Note}
			byKey[k] = info
		}
		info.SetCount++
		seen := false
		for _, e := range info.Exercises {
			if e == s.Exercise {
				seen = true
				break
			}
		}
		if !seen {
			info.Exercises = append(info.Exercises, s.Exercise)
		}
	}

	sessions := make([]SessionInfo, 0, len(byKey))
	for _, info := range byKey {
		sessions = append(sessions, *info)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].RecordTime.After(sessions[j].RecordTime)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

// parseLocaleFloat 解析可能带逗号小数分隔符的数字（如 "62,5"）
func parseLocaleFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	return strconv.ParseFloat(s, 64)
}
