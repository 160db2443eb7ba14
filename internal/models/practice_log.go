package models

import "time"

// PracticeLog 一次计数事件，追加后不可修改。
// MantraID 是弱引用：对应的 Mantra 被删除后日志保留（孤儿日志），供区间统计继续使用。
type PracticeLog struct {
	ID         string    `gorm:"primaryKey;size:36"`
	MantraID   string    `gorm:"size:36;index;not null"`
	MantraName string    `gorm:"size:128"` // 冗余名称，方便历史页和外部同步不用再 join
	Amount     int64     `gorm:"not null"` // 必须为正整数
	Timestamp  time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
}
