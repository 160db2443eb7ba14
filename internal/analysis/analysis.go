package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// InventoryItem 送给模型的库存摘要行（已做正规化：分类换成名称，空值补占位）。
type InventoryItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Brand    string `json:"brand"`
	Ability  string `json:"ability"`
	Category string `json:"category"`
}

// Result 分析结果。AI 失败时由 Fallback 产生同形状的本地结果。
type Result struct {
	Summary    string   `json:"summary"`
	TotalValue int64    `json:"totalValue"`
	Insights   []string `json:"insights"`
}

// Analyzer 封装 Gemini 调用。client 为 nil 时 Analyze 直接报错，
// 由 handler 统一走降级路径。
type Analyzer struct {
	client *genai.Client
	model  string
}

// New 建立 Gemini client。apiKey 为空时返回错误，调用方保留 nil Analyzer 即可。
func New(ctx context.Context, apiKey, model string) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Analyzer{client: client, model: model}, nil
}

// Analyze 请模型给出库存摘要、总价值和三条管理建议，强制 JSON schema 输出。
func (a *Analyzer) Analyze(ctx context.Context, items []InventoryItem) (Result, error) {
	if a == nil || a.client == nil {
		return Result{}, fmt.Errorf("analyzer not configured")
	}

	data, err := json.Marshal(items)
	if err != nil {
		return Result{}, fmt.Errorf("marshal inventory: %w", err)
	}

	prompt := fmt.Sprintf(`請分析以下的庫存數據。
1. 提供庫存組成的簡短摘要（包含品牌與能力分佈情況）。
2. 計算總價值（所有價格的總和）。
3. 提供 3 個針對此庫存組合的具體管理建議（例如：定價策略、分類平衡、品牌多樣性）。

請使用繁體中文回答。

庫存數據:
%s`, data)

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary":    {Type: genai.TypeString},
				"totalValue": {Type: genai.TypeNumber},
				"insights": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"summary", "totalValue", "insights"},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return Result{}, fmt.Errorf("empty response from model")
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Result{}, fmt.Errorf("parse model response: %w", err)
	}
	return result, nil
}

// Fallback 本地降级结果：总价 = 价格加总，附三条通用建议。
// 形状与 AI 结果一致，让前端不用分辨来源。
func Fallback(items []InventoryItem) Result {
	var total int64
	for _, it := range items {
		total += it.Price
	}
	return Result{
		Summary:    "無法取得庫存分析（請檢查 API Key 或網路連線）。",
		TotalValue: total,
		Insights: []string{
			"確保所有產品都有分類與品牌資訊。",
			"定期更新價格資訊。",
			"定期備份您的資料。",
		},
	}
}
