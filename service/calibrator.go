package service

// Atwater 系数：每克宏量营养素对应的千卡
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// CalibratedMacros 校准后的营养四元组
// Calories 恒等于三项宏量（截断后）的 Atwater 合计，保证展示值自洽
type CalibratedMacros struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// Calibrate 把视觉模型的粗略卡路里估值与宏量推导的卡路里做折中校准。
//
// 算法：
//  1. macroCal = 蛋白*4 + 碳水*4 + 脂肪*9
//  2. macroCal <= 0 时返回全零（模型没有给出任何宏量的退化情形）
//  3. 否则 target = (aiCalories + macroCal) / 2，按 target/macroCal 缩放
//     各宏量并截断为整数，再由截断后的宏量反推最终卡路里。
//     最终值相对 target 有小幅向下漂移（每项截断丢不到 1 克，合计 <17 kcal），
//     换来的是展示口径自洽。
//
// 负输入一律先钳到 0：上游模型偶发返回负数时宁可归零，也不放大错误。
func Calibrate(aiCalories int, proteinG, carbsG, fatG float64) CalibratedMacros {
	if aiCalories < 0 {
		aiCalories = 0
	}
	if proteinG < 0 {
		proteinG = 0
	}
	if carbsG < 0 {
		carbsG = 0
	}
	if fatG < 0 {
		fatG = 0
	}

	macroCal := proteinG*KcalPerGramProtein + carbsG*KcalPerGramCarbs + fatG*KcalPerGramFat
	if macroCal <= 0 {
		return CalibratedMacros{}
	}

	target := (float64(aiCalories) + macroCal) / 2
	ratio := target / macroCal

	p := int(proteinG * ratio)
	c := int(carbsG * ratio)
	f := int(fatG * ratio)

	return CalibratedMacros{
		Calories: p*KcalPerGramProtein + c*KcalPerGramCarbs + f*KcalPerGramFat,
		ProteinG: p,
		CarbsG:   c,
		FatG:     f,
	}
}
