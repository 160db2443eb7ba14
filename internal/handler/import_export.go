package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/importer"
	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportExportHandler 库存的 Excel 汇入与 XLSX/CSV 汇出
type ImportExportHandler struct {
	DB *gorm.DB
}

func NewImportExportHandler(db *gorm.DB) *ImportExportHandler {
	return &ImportExportHandler{DB: db}
}

// ---------- 汇入 ----------

// ImportXLSX 容错汇入：表头按中英文别名对应，未知分类自动建档并随机配色，
// 名称和价格都缺的行跳过。整批在一个事务里完成。
func (h *ImportExportHandler) ImportXLSX(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請選擇要匯入的檔案")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "檔案無法讀取")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		// 解析失败是外部协作方错误：给使用者看得懂的讯息，本地资料不动
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "無法解析試算表，請確認檔案格式")
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "試算表沒有工作表")
		return
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "無法讀取工作表內容")
		return
	}

	parsed := importer.ParseRows(rows)

	var imported int
	var newCategories []string

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// 现有分类（名称 -> ID，不区分大小写）
		var categories []models.Category
		if err := tx.Find(&categories).Error; err != nil {
			return err
		}
		catIDByName := make(map[string]string, len(categories))
		existingNames := make([]string, 0, len(categories))
		for _, cat := range categories {
			catIDByName[strings.ToLower(cat.Name)] = cat.ID
			existingNames = append(existingNames, cat.Name)
		}

		// 未知分类逐一建档（一个名称只建一次）
		for _, name := range importer.MissingCategories(parsed.Rows, existingNames) {
			cat := models.Category{
				ID:    uuid.NewString(),
				Name:  name,
				Color: importer.RandomColor(),
			}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
			catIDByName[strings.ToLower(name)] = cat.ID
			newCategories = append(newCategories, name)
		}

		for _, row := range parsed.Rows {
			product := models.Product{
				ID:          uuid.NewString(),
				Name:        row.Name,
				Price:       row.Price,
				CategoryID:  catIDByName[strings.ToLower(row.Category)],
				Brand:       row.Brand,
				Ability:     row.Ability,
				Description: row.Description,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}

			// 品牌/能力收进参考清单
			for kind, name := range map[string]string{
				models.RefKindBrand:   row.Brand,
				models.RefKindAbility: row.Ability,
			} {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				var ref models.RefValue
				if err := tx.Where(models.RefValue{Kind: kind, Name: name}).
					FirstOrCreate(&ref).Error; err != nil {
					return err
				}
			}
			imported++
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "匯入失敗，資料未變更")
		return
	}

	util.Success(c, util.Response{
		"imported":       imported,
		"skipped":        parsed.Skipped,
		"new_categories": newCategories,
	})
}

// ---------- 汇出 ----------

// loadExportRows 汇出用数据：产品 + 分类名称
func (h *ImportExportHandler) loadExportRows() ([]models.Product, map[string]string, error) {
	var products []models.Product
	if err := h.DB.Order("name ASC").Find(&products).Error; err != nil {
		return nil, nil, err
	}

	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		return nil, nil, err
	}
	catName := make(map[string]string, len(categories))
	for _, cat := range categories {
		catName[cat.ID] = cat.Name
	}
	return products, catName, nil
}

// ExportCSV 汇出产品为 CSV
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	products, catName, err := h.loadExportRows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	// 设置响应头
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别中文）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// 写入表头
	writer.Write([]string{"品名", "價格", "分類", "品牌", "能力", "描述"})

	// 写入数据
	for i := range products {
		p := &products[i]
		category := catName[p.CategoryID]
		if category == "" {
			category = "未分類"
		}

		writer.Write([]string{
			p.Name,
			strconv.FormatInt(p.Price, 10),
			category,
			p.Brand,
			p.Ability,
			p.Description,
		})
	}
}

// ExportXLSX 汇出产品为 XLSX
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
	products, catName, err := h.loadExportRows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	f := excelize.NewFile()
	sheetName := "產品清單"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "建立工作表失敗")
		return
	}
	f.SetActiveSheet(index)

	// 设置表头
	headers := []string{"品名", "價格", "分類", "品牌", "能力", "描述"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	// 写入数据
	for idx := range products {
		p := &products[idx]
		row := idx + 2

		category := catName[p.CategoryID]
		if category == "" {
			category = "未分類"
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Brand)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Ability)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Description)
	}

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "匯出失敗")
	}
}
