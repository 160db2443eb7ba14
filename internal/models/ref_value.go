package models

import "time"

// RefValue 去重后的参考清单项（品牌/能力），供表单下拉选单使用。
type RefValue struct {
	ID        uint   `gorm:"primaryKey"`
	Kind      string `gorm:"size:16;not null;uniqueIndex:idx_ref_kind_name"` // brand / ability
	Name      string `gorm:"size:64;not null;uniqueIndex:idx_ref_kind_name"`
	CreatedAt time.Time
}

// RefValue 的 Kind 取值
const (
	RefKindBrand   = "brand"
	RefKindAbility = "ability"
)
