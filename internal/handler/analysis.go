package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/analysis"
	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalysisHandler AI 库存分析。Analyzer 为 nil（没配 API Key）或调用失败时
// 一律返回本地降级结果，对使用者永远是 200。
type AnalysisHandler struct {
	DB       *gorm.DB
	Analyzer *analysis.Analyzer
}

func NewAnalysisHandler(db *gorm.DB, analyzer *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{
		DB:       db,
		Analyzer: analyzer,
	}
}

// AnalyzeInventory 汇整库存摘要送 Gemini 分析
func (h *AnalysisHandler) AnalyzeInventory(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	catName := make(map[string]string, len(categories))
	for _, cat := range categories {
		catName[cat.ID] = cat.Name
	}

	// 正规化：空值补占位，分类换成名称
	items := make([]analysis.InventoryItem, 0, len(products))
	for i := range products {
		p := &products[i]
		item := analysis.InventoryItem{
			Name:     p.Name,
			Price:    p.Price,
			Brand:    p.Brand,
			Ability:  p.Ability,
			Category: catName[p.CategoryID],
		}
		if item.Brand == "" {
			item.Brand = "Unknown"
		}
		if item.Ability == "" {
			item.Ability = "None"
		}
		if item.Category == "" {
			item.Category = "Unknown"
		}
		items = append(items, item)
	}

	source := "gemini"
	result, err := h.analyze(items)
	if err != nil {
		// 任何外部失败都降级，不往使用者丢错误
		result = analysis.Fallback(items)
		source = "local"
	}

	util.Success(c, util.Response{
		"result": result,
		"source": source,
	})
}

func (h *AnalysisHandler) analyze(items []analysis.InventoryItem) (analysis.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return h.Analyzer.Analyze(ctx, items)
}
