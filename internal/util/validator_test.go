package util

import (
	"testing"
)

// TestValidateAmount_Positive 测试正数增量
func TestValidateAmount_Positive(t *testing.T) {
	testCases := []int64{1, 7, 108, 999999}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%d) error = %v, want nil", amount, err)
		}
	}
}

// TestValidateAmount_Zero 测试零增量（异常）
func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(0)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

// TestValidateAmount_Negative 测试负数增量（异常）
func TestValidateAmount_Negative(t *testing.T) {
	testCases := []int64{-1, -100, -9999}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%d) error = nil, want error", amount)
		}
	}
}

// TestValidateAmount_TooLarge 测试增量过大（异常）
func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(1000000)

	if err == nil {
		t.Error("ValidateAmount(1000000) error = nil, want error")
	}
}

// TestValidateDate_Valid 测试有效日期
func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

// TestValidateDate_Invalid 测试无效日期（异常）
func TestValidateDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-13-01",
		"not-a-date",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

// TestValidateName 名称去空白后不能为空
func TestValidateName(t *testing.T) {
	if err := ValidateName("大悲咒"); err != nil {
		t.Errorf("ValidateName(大悲咒) error = %v, want nil", err)
	}
	if err := ValidateName("   "); err == nil {
		t.Error("ValidateName(blank) error = nil, want error")
	}
	if err := ValidateName(""); err == nil {
		t.Error("ValidateName(empty) error = nil, want error")
	}
}

// TestValidatePrice 价格允许 0，不允许负数
func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(0); err != nil {
		t.Errorf("ValidatePrice(0) error = %v, want nil", err)
	}
	if err := ValidatePrice(1200); err != nil {
		t.Errorf("ValidatePrice(1200) error = %v, want nil", err)
	}
	if err := ValidatePrice(-1); err == nil {
		t.Error("ValidatePrice(-1) error = nil, want error")
	}
}
