package handler

import (
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/period"

	"gorm.io/gorm"
)

// ---------- 设置表读写（对应前端原本的 LocalStorage key） ----------

func getSetting(db *gorm.DB, key string) (string, error) {
	var s models.Setting
	err := db.First(&s, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

func setSetting(db *gorm.DB, key, value string) error {
	// Assign 用 map：空字符串也要能写进去（清除旧值）
	var s models.Setting
	return db.Where(models.Setting{Key: key}).
		Assign(map[string]interface{}{"value": value}).
		FirstOrCreate(&s).Error
}

func delSettings(db *gorm.DB, keys ...string) error {
	return db.Delete(&models.Setting{}, "key IN ?", keys).Error
}

// loadWindow 从设置表组装全局日期区间。日期存 YYYY-MM-DD，
// 在这里（而不是落库时）归一化为本地时区的当日首尾，换时区也不会漂。
func loadWindow(db *gorm.DB) (period.Window, error) {
	var w period.Window

	label, err := getSetting(db, models.SettingPeriodLabel)
	if err != nil {
		return w, err
	}
	w.Label = label

	startStr, err := getSetting(db, models.SettingPeriodStart)
	if err != nil {
		return w, err
	}
	if startStr != "" {
		t, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err == nil {
			w.Start = &t
		}
	}

	endStr, err := getSetting(db, models.SettingPeriodEnd)
	if err != nil {
		return w, err
	}
	if endStr != "" {
		t, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err == nil {
			w.End = &t
		}
	}
	return w, nil
}
