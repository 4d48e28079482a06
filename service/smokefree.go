package service

import (
	"math/rand"
	"time"
)

// SmokeFreeElapsed 戒烟持续时长（天/时/分分解）
type SmokeFreeElapsed struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Elapsed 计算自戒烟时刻起的持续时长。
// now 早于 quit（比如把戒烟日设在未来）时钳为全零，不展示负时长。
func Elapsed(quit, now time.Time) SmokeFreeElapsed {
	seconds := int(now.Sub(quit).Seconds())
	if seconds < 0 {
		return SmokeFreeElapsed{}
	}
	return SmokeFreeElapsed{
		Days:    seconds / 86400,
		Hours:   (seconds / 3600) % 24,
		Minutes: (seconds / 60) % 60,
	}
}

// InterventionCards 戒烟干预卡片，固定集合
var InterventionCards = []string{
	"渴望只持续几分钟，撑过去它就输了。",
	"深呼吸十次，再喝一大杯水。",
	"想想你戒烟省下的钱，已经够一顿好饭了。",
	"你的肺正在自我修复，别现在打断它。",
	"给朋友发条消息，把注意力挪开五分钟。",
	"出门走两圈，身体动起来渴望就退潮。",
}

// PickCard 从卡片集合中等概率抽一张
func PickCard(rng *rand.Rand) string {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return InterventionCards[rng.Intn(len(InterventionCards))]
}
