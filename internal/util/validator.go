package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmount 验证计数增量（必须为正整数且不超过上限）
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	if amount >= 1000000 { // 单次最多一百万，挡误输入
		return fmt.Errorf("amount too large, got %d", amount)
	}
	return nil
}

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateName 验证名称（去空白后不能为空且长度合理）
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len([]rune(name)) > 64 {
		return fmt.Errorf("name too long, max 64 characters")
	}
	return nil
}

// ValidatePrice 验证产品价格（非负整数）
func ValidatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("price must not be negative, got %d", price)
	}
	if price >= 100000000 { // 一亿上限
		return fmt.Errorf("price too large, got %d", price)
	}
	return nil
}
