package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductHandler 库存/报价单相关接口（产品、分类、品牌/能力参考清单）
type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// ---------- 请求/响应结构 ----------

type productReq struct {
	Name        string `json:"name" binding:"required,max=128"`
	Price       int64  `json:"price"`
	CategoryID  string `json:"category_id" binding:"max=36"`
	Brand       string `json:"brand" binding:"max=64"`
	Ability     string `json:"ability" binding:"max=64"`
	Description string `json:"description" binding:"max=1024"`
}

type productResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	CategoryID  string    `json:"category_id,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Ability     string    `json:"ability,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type categoryReq struct {
	Name  string `json:"name" binding:"required,max=64"`
	Color string `json:"color" binding:"max=16"`
}

func toProductResp(p *models.Product) productResp {
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Brand:       p.Brand,
		Ability:     p.Ability,
		Description: p.Description,
		UpdatedAt:   p.UpdatedAt,
	}
}

// rememberRef 把品牌/能力收进去重参考清单，已存在就跳过
func (h *ProductHandler) rememberRef(tx *gorm.DB, kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	var ref models.RefValue
	return tx.Where(models.RefValue{Kind: kind, Name: name}).
		FirstOrCreate(&ref).Error
}

// ---------- 产品 ----------

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入產品名稱")
		return
	}
	if err := util.ValidatePrice(req.Price); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入有效價格")
		return
	}

	// 分类是弱引用，但建档时给的 ID 必须存在，挡掉前端传错
	if req.CategoryID != "" {
		var count int64
		if err := h.DB.Model(&models.Category{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
			return
		}
		if count == 0 {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "分類不存在")
			return
		}
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Brand:       strings.TrimSpace(req.Brand),
		Ability:     strings.TrimSpace(req.Ability),
		Description: req.Description,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if err := h.rememberRef(tx, models.RefKindBrand, product.Brand); err != nil {
			return err
		}
		return h.rememberRef(tx, models.RefKindAbility, product.Ability)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"product": toProductResp(&product),
	})
}

// ListProducts 产品列表，连同分类一起返回，前端一次拿全
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("updated_at DESC").Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	var categories []models.Category
	if err := h.DB.Order("created_at ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	items := make([]productResp, 0, len(products))
	for i := range products {
		items = append(items, toProductResp(&products[i]))
	}

	catItems := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		catItems = append(catItems, gin.H{
			"id":    cat.ID,
			"name":  cat.Name,
			"color": cat.Color,
		})
	}

	util.Success(c, util.Response{
		"products":   items,
		"categories": catItems,
	})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入產品名稱")
		return
	}
	if err := util.ValidatePrice(req.Price); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入有效價格")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "產品不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		}
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.Brand = strings.TrimSpace(req.Brand)
	product.Ability = strings.TrimSpace(req.Ability)
	product.Description = req.Description

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		if err := h.rememberRef(tx, models.RefKindBrand, product.Brand); err != nil {
			return err
		}
		return h.rememberRef(tx, models.RefKindAbility, product.Ability)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"product": toProductResp(&product),
	})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "刪除失敗")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "產品不存在")
		return
	}

	util.Success(c, util.Response{
		"message": "刪除成功",
	})
}

// ---------- 分类 ----------

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入分類名稱")
		return
	}
	if req.Color == "" {
		req.Color = "#6366f1"
	}

	// 名称不区分大小写唯一
	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", req.Name).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "分類已存在")
		return
	}

	category := models.Category{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Color: req.Color,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"category": gin.H{
			"id":    category.ID,
			"name":  category.Name,
			"color": category.Color,
		},
	})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Order("created_at ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	items := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		items = append(items, gin.H{
			"id":    cat.ID,
			"name":  cat.Name,
			"color": cat.Color,
		})
	}

	util.Success(c, util.Response{
		"categories": items,
	})
}

// DeleteCategory 删除分类；产品保留（弱引用），前端显示为未分类
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "刪除失敗")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "分類不存在")
		return
	}

	util.Success(c, util.Response{
		"message": "刪除成功",
	})
}

// ---------- 品牌/能力参考清单 ----------

func refKindFromParam(param string) string {
	switch param {
	case "brands":
		return models.RefKindBrand
	case "abilities":
		return models.RefKindAbility
	}
	return ""
}

func (h *ProductHandler) ListRefs(c *gin.Context) {
	kind := refKindFromParam(c.Param("kind"))
	if kind == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	var refs []models.RefValue
	if err := h.DB.Where("kind = ?", kind).Order("name ASC").Find(&refs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}

	util.Success(c, util.Response{
		"items": names,
	})
}

type refReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *ProductHandler) AddRef(c *gin.Context) {
	kind := refKindFromParam(c.Param("kind"))
	if kind == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	var req refReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入名稱")
		return
	}

	if err := h.rememberRef(h.DB, kind, req.Name); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"message": "已加入清單",
	})
}

func (h *ProductHandler) RemoveRef(c *gin.Context) {
	kind := refKindFromParam(c.Param("kind"))
	if kind == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	name := c.Param("name")
	if err := h.DB.Delete(&models.RefValue{}, "kind = ? AND name = ?", kind, name).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "刪除失敗")
		return
	}

	util.Success(c, util.Response{
		"message": "已從清單移除",
	})
}

// ---------- 报价单数据（供前端汇出图片用） ----------

// QuoteSheet 返回按分类整理好的产品清单，前端只负责画表和截图
func (h *ProductHandler) QuoteSheet(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("name ASC").Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	catMap := make(map[string]models.Category, len(categories))
	for _, cat := range categories {
		catMap[cat.ID] = cat
	}

	rows := make([]gin.H, 0, len(products))
	for i := range products {
		p := &products[i]
		row := gin.H{
			"name":  p.Name,
			"price": p.Price,
			"brand": p.Brand,
		}
		if cat, ok := catMap[p.CategoryID]; ok {
			row["category"] = cat.Name
			row["category_color"] = cat.Color
		} else {
			row["category"] = "未分類"
		}
		rows = append(rows, row)
	}

	util.Success(c, util.Response{
		"rows":         rows,
		"generated_at": time.Now(),
	})
}
