package period

import (
	"math"
	"sort"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
)

// Window 全局日期区间（愿力期限）。Start/End 为 nil 表示该方向不设界。
// Label 只影响显示：只有名称没有日期的区间也算"启用中"，但不改变统计结果。
type Window struct {
	Label string
	Start *time.Time
	End   *time.Time
}

// Bounded 是否至少设置了一个日期边界
func (w Window) Bounded() bool {
	return w.Start != nil || w.End != nil
}

// Active 区间是否启用（含只有名称的纯标注模式）
func (w Window) Active() bool {
	return w.Bounded() || w.Label != ""
}

// StartOfDay 归一化到当天 00:00:00.000
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 归一化到当天 23:59:59.999
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// ComputeDisplayCounts 计算每个项目的显示值。
// 没有日期边界时直接返回各项目的终身累计（O(项目数)），
// 否则单趟扫描日志，把落在 [start 00:00, end 23:59:59.999] 闭区间内的
// Amount 累加到对应项目上。指向已删除项目的孤儿日志照常累加，反正不会被显示。
// 每个传入的项目都保证有值（至少为 0），调用方不需要再做缺省处理。
func ComputeDisplayCounts(mantras []models.Mantra, logs []models.PracticeLog, w Window) map[string]int64 {
	counts := make(map[string]int64, len(mantras))
	for i := range mantras {
		counts[mantras[i].ID] = 0
	}

	if !w.Bounded() {
		for i := range mantras {
			counts[mantras[i].ID] = mantras[i].TotalCount
		}
		return counts
	}

	for i := range logs {
		t := logs[i].Timestamp
		if w.Start != nil && t.Before(StartOfDay(*w.Start)) {
			continue
		}
		if w.End != nil && t.After(EndOfDay(*w.End)) {
			continue
		}
		counts[logs[i].MantraID] += logs[i].Amount
	}
	return counts
}

// Percentage 目标完成度：clamp(round(display/target*100), 0, 100)。
// 没有目标或目标 <= 0 时返回 ok=false，表示不显示百分比。
func Percentage(displayCount int64, targetCount *int64) (int, bool) {
	if targetCount == nil || *targetCount <= 0 {
		return 0, false
	}
	pct := int(math.Round(float64(displayCount) / float64(*targetCount) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// Partition 把项目分成置顶区和一般区：
// 置顶保持传入顺序，一般区按 CreatedAt 升序（稳定排序，同时间保持原顺序）。
func Partition(mantras []models.Mantra) (pinned, others []models.Mantra) {
	for i := range mantras {
		if mantras[i].IsPinned {
			pinned = append(pinned, mantras[i])
		} else {
			others = append(others, mantras[i])
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].CreatedAt.Before(others[j].CreatedAt)
	})
	return pinned, others
}
