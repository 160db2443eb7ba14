package period

import (
	"testing"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

// TestComputeDisplayCounts_NoWindow 没有边界时直接返回终身累计
func TestComputeDisplayCounts_NoWindow(t *testing.T) {
	mantras := []models.Mantra{
		{ID: "a", TotalCount: 108},
		{ID: "b", TotalCount: 0},
	}
	logs := []models.PracticeLog{
		{MantraID: "a", Amount: 9, Timestamp: at(2025, 1, 1, 12, 0)},
	}

	counts := ComputeDisplayCounts(mantras, logs, Window{})

	if counts["a"] != 108 {
		t.Errorf("counts[a] = %d, want 108", counts["a"])
	}
	if got, ok := counts["b"]; !ok || got != 0 {
		t.Errorf("counts[b] = %d (present=%v), want 0 present", got, ok)
	}
}

// TestComputeDisplayCounts_LabelOnly 只有名称的区间不触发日志扫描
func TestComputeDisplayCounts_LabelOnly(t *testing.T) {
	mantras := []models.Mantra{{ID: "a", TotalCount: 50}}
	logs := []models.PracticeLog{
		{MantraID: "a", Amount: 3, Timestamp: at(2025, 1, 1, 12, 0)},
	}
	w := Window{Label: "新春精進"}

	if !w.Active() {
		t.Fatal("label-only window should be active")
	}
	counts := ComputeDisplayCounts(mantras, logs, w)
	if counts["a"] != 50 {
		t.Errorf("counts[a] = %d, want totalCount 50", counts["a"])
	}
}

// TestComputeDisplayCounts_Bounds 边界当天首尾均含在区间内
func TestComputeDisplayCounts_Bounds(t *testing.T) {
	start := day(2025, 3, 10)
	end := day(2025, 3, 12)
	mantras := []models.Mantra{{ID: "a", TotalCount: 999}}
	logs := []models.PracticeLog{
		{MantraID: "a", Amount: 1, Timestamp: at(2025, 3, 10, 0, 0)},                                   // 起始日 00:00
		{MantraID: "a", Amount: 2, Timestamp: time.Date(2025, 3, 12, 23, 59, 59, 999_000_000, time.Local)}, // 结束日最后一毫秒
		{MantraID: "a", Amount: 4, Timestamp: at(2025, 3, 9, 23, 59)},  // 区间前
		{MantraID: "a", Amount: 8, Timestamp: at(2025, 3, 13, 0, 0)},   // 区间后
	}

	counts := ComputeDisplayCounts(mantras, logs, Window{Start: &start, End: &end})
	if counts["a"] != 3 {
		t.Errorf("counts[a] = %d, want 3 (boundary entries inclusive)", counts["a"])
	}
}

// TestComputeDisplayCounts_OpenEnded 只有开始日期：T0+5 天之后的日志才计入
func TestComputeDisplayCounts_OpenEnded(t *testing.T) {
	t0 := day(2025, 6, 1)
	mantras := []models.Mantra{{ID: "a", TotalCount: 8, CreatedAt: t0}}
	logs := []models.PracticeLog{
		{MantraID: "a", Amount: 5, Timestamp: t0.AddDate(0, 0, 1)},
		{MantraID: "a", Amount: 3, Timestamp: t0.AddDate(0, 0, 10)},
	}

	start := t0.AddDate(0, 0, 5)
	counts := ComputeDisplayCounts(mantras, logs, Window{Start: &start})
	if counts["a"] != 3 {
		t.Errorf("windowed counts[a] = %d, want 3", counts["a"])
	}

	// 清除区间后回到终身累计
	counts = ComputeDisplayCounts(mantras, logs, Window{})
	if counts["a"] != 8 {
		t.Errorf("unwindowed counts[a] = %d, want 8", counts["a"])
	}
}

// TestComputeDisplayCounts_OrphanLogs 孤儿日志照常累加，不会 panic
func TestComputeDisplayCounts_OrphanLogs(t *testing.T) {
	start := day(2025, 3, 1)
	end := day(2025, 3, 31)
	logs := []models.PracticeLog{
		{MantraID: "deleted", Amount: 7, Timestamp: at(2025, 3, 15, 8, 0)},
	}

	counts := ComputeDisplayCounts(nil, logs, Window{Start: &start, End: &end})
	if counts["deleted"] != 7 {
		t.Errorf("counts[deleted] = %d, want 7", counts["deleted"])
	}
}

// TestPercentage 完成度换算与上限截断
func TestPercentage(t *testing.T) {
	target := int64(200)
	zero := int64(0)
	cases := []struct {
		display int64
		target  *int64
		want    int
		wantOK  bool
	}{
		{50, &target, 25, true},
		{250, &target, 100, true}, // clamped
		{0, &target, 0, true},
		{50, nil, 0, false},
		{50, &zero, 0, false},
	}

	for _, tc := range cases {
		got, ok := Percentage(tc.display, tc.target)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Percentage(%d, %v) = (%d, %v), want (%d, %v)",
				tc.display, tc.target, got, ok, tc.want, tc.wantOK)
		}
	}
}

// TestPartition 置顶在前保持原顺序，其余按建立时间升序且稳定
func TestPartition(t *testing.T) {
	t0 := day(2025, 1, 1)
	mantras := []models.Mantra{
		{ID: "c", CreatedAt: t0.AddDate(0, 0, 2)},
		{ID: "p2", IsPinned: true, CreatedAt: t0.AddDate(0, 0, 9)},
		{ID: "a", CreatedAt: t0},
		{ID: "p1", IsPinned: true, CreatedAt: t0.AddDate(0, 0, 1)},
		{ID: "b", CreatedAt: t0}, // 与 a 同时间，应保持在 a 之后
	}

	pinned, others := Partition(mantras)

	if len(pinned) != 2 || pinned[0].ID != "p2" || pinned[1].ID != "p1" {
		t.Errorf("pinned order = %v, want [p2 p1]", ids(pinned))
	}
	wantOthers := []string{"a", "b", "c"}
	if len(others) != 3 {
		t.Fatalf("others len = %d, want 3", len(others))
	}
	for i, id := range wantOthers {
		if others[i].ID != id {
			t.Errorf("others order = %v, want %v", ids(others), wantOthers)
			break
		}
	}
}

func ids(ms []models.Mantra) []string {
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].ID
	}
	return out
}
