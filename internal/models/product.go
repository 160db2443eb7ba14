package models

import "time"

// Product 库存/报价单里的一项产品。价格以整数存储（新台币元）。
// CategoryID 是弱引用：分类被删除后产品保留，前端按"未分类"显示。
type Product struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:128;not null"`
	Price       int64  `gorm:"not null"`
	CategoryID  string `gorm:"size:36;index"`
	Brand       string `gorm:"size:64"`
	Ability     string `gorm:"size:64"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
