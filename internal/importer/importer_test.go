package importer

import (
	"testing"
)

// TestMapHeader_Bilingual 中英文表头都能对上标准字段
func TestMapHeader_Bilingual(t *testing.T) {
	header := []string{"品名", "Price", "分類", "品牌", "能力", "備註"}

	index := MapHeader(header)

	want := map[string]int{
		"name": 0, "price": 1, "category": 2,
		"brand": 3, "ability": 4, "description": 5,
	}
	for field, col := range want {
		if index[field] != col {
			t.Errorf("index[%s] = %d, want %d", field, index[field], col)
		}
	}
}

// TestMapHeader_GreedyOnce 一列只能被认领一次："name" 列被 name 字段
// 认领后，product 别名不应再指回去
func TestMapHeader_GreedyOnce(t *testing.T) {
	header := []string{"name", "product"}

	index := MapHeader(header)

	if index["name"] != 0 {
		t.Errorf("index[name] = %d, want 0", index["name"])
	}
	if _, ok := index["price"]; ok {
		t.Error("price should be absent when no alias matches")
	}
}

// TestMapHeader_Missing 缺失的字段不出现在映射里
func TestMapHeader_Missing(t *testing.T) {
	index := MapHeader([]string{"名稱", "价格"})

	if _, ok := index["brand"]; ok {
		t.Error("brand should be absent")
	}
	if index["name"] != 0 || index["price"] != 1 {
		t.Errorf("index = %v, want name=0 price=1", index)
	}
}

// TestParsePrice 货币符号、千分位、小数都能容错
func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1200", 1200},
		{"NT$1,200", 1200},
		{"1200 元", 1200},
		{"99.5", 99},
		{" 0 ", 0},
		{"-50", 0},   // 负价视为无效
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// TestParseRows_SkipRule 名称和价格都缺的行跳过，只缺其一的保留
func TestParseRows_SkipRule(t *testing.T) {
	rows := [][]string{
		{"品名", "價格", "分類"},
		{"楠木佛珠", "1200", "佛珠"},
		{"", "", "备注行"},           // 两者皆缺 -> 跳过
		{"无价样品", "", "佛珠"},       // 有名称 -> 保留，价格 0
		{"", "300", ""},            // 有价格 -> 保留
	}

	result := ParseRows(rows)

	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("Rows len = %d, want 3", len(result.Rows))
	}
	if result.Rows[0].Name != "楠木佛珠" || result.Rows[0].Price != 1200 || result.Rows[0].Category != "佛珠" {
		t.Errorf("row0 = %+v", result.Rows[0])
	}
	if result.Rows[1].Price != 0 {
		t.Errorf("row1.Price = %d, want 0", result.Rows[1].Price)
	}
}

// TestParseRows_ShortRow 行比表头短时缺的单元格留空，不越界
func TestParseRows_ShortRow(t *testing.T) {
	rows := [][]string{
		{"name", "price", "brand"},
		{"item", "100"},
	}

	result := ParseRows(rows)

	if len(result.Rows) != 1 {
		t.Fatalf("Rows len = %d, want 1", len(result.Rows))
	}
	if result.Rows[0].Brand != "" {
		t.Errorf("Brand = %q, want empty", result.Rows[0].Brand)
	}
}

// TestMissingCategories 未知分类只建一次，已知分类（含大小写不同）不建
func TestMissingCategories(t *testing.T) {
	rows := []Row{
		{Name: "a", Category: "Tools"},
		{Name: "b", Category: "tools"}, // 与 Tools 重复
		{Name: "c", Category: "佛珠"},   // 已存在
		{Name: "d", Category: ""},
	}

	missing := MissingCategories(rows, []string{"佛珠"})

	if len(missing) != 1 || missing[0] != "Tools" {
		t.Errorf("missing = %v, want [Tools]", missing)
	}
}

// TestRandomColor 自动配色必须非空且来自色票
func TestRandomColor(t *testing.T) {
	for i := 0; i < 20; i++ {
		c := RandomColor()
		if c == "" {
			t.Fatal("RandomColor returned empty string")
		}
		found := false
		for _, p := range palette {
			if c == p {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("RandomColor returned %q not in palette", c)
		}
	}
}
