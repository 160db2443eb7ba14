package models

import "time"

// Setting 键值设置表，对应前端原本存在 LocalStorage 的全局状态。
type Setting struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// 设置键名
const (
	SettingUserName    = "user_name"
	SettingUserGroup   = "user_group"
	SettingSheetURL    = "sheet_url" // 外部同步端点（Apps Script URL）
	SettingPeriodLabel = "period_label"
	SettingPeriodStart = "period_start" // YYYY-MM-DD
	SettingPeriodEnd   = "period_end"   // YYYY-MM-DD
)
