package models

import "time"

// Mantra 表示一个定课项目（持咒/念佛计数器）
// TotalCount 是终身累计值；Reset 只清零 TotalCount，历史 PracticeLog 保留，
// 因此 reset 之后 "total = sum(logs)" 不再成立，这是有意保留的审计行为，不是 bug。
type Mantra struct {
	ID          string `gorm:"primaryKey;size:36"` // UUID
	Name        string `gorm:"size:128;not null"`
	TotalCount  int64  `gorm:"not null;default:0"`
	IsPinned    bool   `gorm:"not null;default:false"`
	TargetCount *int64 // 可选目标值，> 0 时前端显示完成百分比
	Color       string `gorm:"size:16"` // 显示用 hex 色码
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
