package service

// Progress 计算目标完成度，结果钳制在 [0,1]。
// target <= 0 时定义为 0（避免除零），仅用于进度条展示，没有告警语义。
func Progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	ratio := current / target
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// NutritionTargets 每日营养目标（来自设置）
type NutritionTargets struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// TargetProgress 当日实际值对目标的完成度
type TargetProgress struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DailyTargetProgress 逐项计算当日营养完成度
func DailyTargetProgress(totals NutritionTotals, targets NutritionTargets) TargetProgress {
	return TargetProgress{
		Calories: Progress(float64(totals.Calories), float64(targets.Calories)),
		ProteinG: Progress(totals.ProteinG, targets.ProteinG),
		CarbsG:   Progress(totals.CarbsG, targets.CarbsG),
		FatG:     Progress(totals.FatG, targets.FatG),
	}
}
