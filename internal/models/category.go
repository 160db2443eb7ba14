package models

import "time"

// Category 产品分类，Color 为显示用 hex 色码。
type Category struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	Color     string `gorm:"size:16;not null"`
	CreatedAt time.Time
}
