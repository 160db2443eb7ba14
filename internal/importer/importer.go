package importer

import (
	"math/rand"
	"strconv"
	"strings"
)

// 每个标准字段按顺序接受的表头别名（中英文混用的表格都能吃进来）。
// 贪婪消费：按字段顺序逐一认领列，一列最多被认领一次。
var headerAliases = []struct {
	Field   string
	Aliases []string
}{
	{"name", []string{"name", "product", "product name", "品名", "名稱", "名称", "產品名稱", "产品名称", "商品名稱", "商品名称"}},
	{"price", []string{"price", "unit price", "價格", "价格", "單價", "单价", "售價", "售价", "金額", "金额"}},
	{"category", []string{"category", "type", "分類", "分类", "類別", "类别", "種類", "种类"}},
	{"brand", []string{"brand", "品牌", "廠牌", "厂牌"}},
	{"ability", []string{"ability", "能力", "功能"}},
	{"description", []string{"description", "desc", "note", "描述", "說明", "说明", "備註", "备注"}},
}

// Row 一行解析完成的产品草稿。Category 还是名称，建档时再换成 ID。
type Row struct {
	Name        string
	Price       int64
	Category    string
	Brand       string
	Ability     string
	Description string
}

// Result 解析结果：有效行 + 跳过行数
type Result struct {
	Rows    []Row
	Skipped int
}

// MapHeader 把表头行映射成 标准字段 -> 列索引。
// 找不到别名的字段不会出现在结果里。
func MapHeader(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	used := make([]bool, len(header))
	index := make(map[string]int, len(headerAliases))

	for _, fa := range headerAliases {
		for _, alias := range fa.Aliases {
			found := false
			for col, h := range normalized {
				if !used[col] && h == alias {
					index[fa.Field] = col
					used[col] = true
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return index
}

// ParsePrice 容错解析价格字符串："NT$1,200"、"1200 元"、"99.5" 都接受，
// 与前端 parseInt 行为一致取整数部分；解析不了返回 0。
func ParsePrice(s string) int64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// ParseRows 解析整张表（第一行为表头）。
// 名称和价格都缺的行直接跳过；其余字段缺列就留空。
func ParseRows(rows [][]string) Result {
	var result Result
	if len(rows) == 0 {
		return result
	}

	index := MapHeader(rows[0])
	cell := func(row []string, field string) string {
		col, ok := index[field]
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	for _, row := range rows[1:] {
		name := cell(row, "name")
		priceRaw := cell(row, "price")

		// 连名称带价格都没有的行视为空行/备注行
		if name == "" && priceRaw == "" {
			result.Skipped++
			continue
		}

		result.Rows = append(result.Rows, Row{
			Name:        name,
			Price:       ParsePrice(priceRaw),
			Category:    cell(row, "category"),
			Brand:       cell(row, "brand"),
			Ability:     cell(row, "ability"),
			Description: cell(row, "description"),
		})
	}
	return result
}

// MissingCategories 返回行里出现、但 existing 中没有的分类名称，
// 名称比对不区分大小写，结果保持首次出现顺序且去重。
func MissingCategories(rows []Row, existing []string) []string {
	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[strings.ToLower(name)] = true
	}

	var missing []string
	for _, r := range rows {
		if r.Category == "" {
			continue
		}
		key := strings.ToLower(r.Category)
		if known[key] {
			continue
		}
		known[key] = true
		missing = append(missing, r.Category)
	}
	return missing
}

// 新分类的随机配色（取自前端的 Tailwind 色票）
var palette = []string{
	"#6366f1", "#ef4444", "#f59e0b", "#10b981",
	"#3b82f6", "#8b5cf6", "#ec4899", "#14b8a6",
}

// RandomColor 给自动建立的分类挑一个显示色
func RandomColor() string {
	return palette[rand.Intn(len(palette))]
}
