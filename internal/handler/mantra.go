package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/period"
	"github.com/tw092669-ctrl/gecko/internal/syncx"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MantraHandler 负责定课项目相关接口
type MantraHandler struct {
	DB        *gorm.DB
	Publisher *syncx.Publisher
}

func NewMantraHandler(db *gorm.DB, publisher *syncx.Publisher) *MantraHandler {
	return &MantraHandler{
		DB:        db,
		Publisher: publisher,
	}
}

// ---------- 请求/响应结构 ----------

type createMantraReq struct {
	Name        string `json:"name" binding:"required"`
	TargetCount *int64 `json:"target_count"`
	Color       string `json:"color" binding:"max=16"`
}

type incrementReq struct {
	Amount int64 `json:"amount" binding:"required"`
}

type mantraResp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalCount   int64     `json:"total_count"`
	DisplayCount int64     `json:"display_count"`
	IsPinned     bool      `json:"is_pinned"`
	TargetCount  *int64    `json:"target_count,omitempty"`
	Percentage   *int      `json:"percentage,omitempty"`
	Color        string    `json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toMantraResp(m *models.Mantra, displayCount int64) mantraResp {
	resp := mantraResp{
		ID:           m.ID,
		Name:         m.Name,
		TotalCount:   m.TotalCount,
		DisplayCount: displayCount,
		IsPinned:     m.IsPinned,
		TargetCount:  m.TargetCount,
		Color:        m.Color,
		CreatedAt:    m.CreatedAt,
	}
	if pct, ok := period.Percentage(displayCount, m.TargetCount); ok {
		resp.Percentage = &pct
	}
	return resp
}

// displayCountFor 依当前全局区间计算单一项目的显示值，与列表页同一套语义：
// 无日期边界直接用终身累计，有边界时只捞该项目的日志做区间加总。
// 读取区间失败时退回终身累计，宁可显示旧值也不让变更接口报错。
func (h *MantraHandler) displayCountFor(m *models.Mantra) int64 {
	window, err := loadWindow(h.DB)
	if err != nil || !window.Bounded() {
		return m.TotalCount
	}

	var logs []models.PracticeLog
	if err := h.DB.Where("mantra_id = ?", m.ID).Find(&logs).Error; err != nil {
		return m.TotalCount
	}

	counts := period.ComputeDisplayCounts([]models.Mantra{*m}, logs, window)
	return counts[m.ID]
}

// ---------- 列表（含区间统计与置顶分区） ----------

// ListMantras 返回置顶区 + 一般区，display_count 按当前全局日期区间计算。
// 每次请求都从当前快照重算，没有缓存可失效。
func (h *MantraHandler) ListMantras(c *gin.Context) {
	// created_at 相同的按 rowid（写入顺序）排，随机 uuid 主键排不出这个序
	var mantras []models.Mantra
	if err := h.DB.Order("created_at ASC, rowid ASC").Find(&mantras).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	window, err := loadWindow(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "讀取區間設定失敗")
		return
	}

	// 无边界时走 O(项目数) 捷径，此时根本不用捞日志
	var logs []models.PracticeLog
	if window.Bounded() {
		if err := h.DB.Find(&logs).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
			return
		}
	}

	counts := period.ComputeDisplayCounts(mantras, logs, window)
	pinned, others := period.Partition(mantras)

	pinnedResp := make([]mantraResp, 0, len(pinned))
	for i := range pinned {
		pinnedResp = append(pinnedResp, toMantraResp(&pinned[i], counts[pinned[i].ID]))
	}
	othersResp := make([]mantraResp, 0, len(others))
	for i := range others {
		othersResp = append(othersResp, toMantraResp(&others[i], counts[others[i].ID]))
	}

	util.Success(c, util.Response{
		"pinned":        pinnedResp,
		"others":        othersResp,
		"period_active": window.Active(),
	})
}

// ---------- 新增项目 ----------

func (h *MantraHandler) CreateMantra(c *gin.Context) {
	var req createMantraReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入項目名稱")
		return
	}
	if req.TargetCount != nil && *req.TargetCount <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "目標數量必須為正整數")
		return
	}

	mantra := models.Mantra{
		ID:          uuid.NewString(),
		Name:        req.Name,
		TargetCount: req.TargetCount,
		Color:       req.Color,
	}
	if err := h.DB.Create(&mantra).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"mantra": toMantraResp(&mantra, 0),
	})
}

// ---------- 计数 +N ----------

// IncrementMantra 在一个事务里追加日志并累加 TotalCount，
// 提交后再异步推送到外部同步端点（失败不影响本地结果）。
func (h *MantraHandler) IncrementMantra(c *gin.Context) {
	id := c.Param("id")

	var req incrementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入有效次數")
		return
	}

	var mantra models.Mantra
	var entry models.PracticeLog

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mantra, "id = ?", id).Error; err != nil {
			return err
		}

		entry = models.PracticeLog{
			ID:         uuid.NewString(),
			MantraID:   mantra.ID,
			MantraName: mantra.Name,
			Amount:     req.Amount,
			Timestamp:  time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		mantra.TotalCount += req.Amount
		return tx.Save(&mantra).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "項目不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		}
		return
	}

	// 尽力而为的外部同步，不等待结果
	if h.Publisher != nil {
		sheetURL, _ := getSetting(h.DB, models.SettingSheetURL)
		userName, _ := getSetting(h.DB, models.SettingUserName)
		userGroup, _ := getSetting(h.DB, models.SettingUserGroup)
		h.Publisher.PublishLogAsync(sheetURL, entry, userName, userGroup)
	}

	util.Success(c, util.Response{
		"mantra": toMantraResp(&mantra, h.displayCountFor(&mantra)),
		"log": gin.H{
			"id":        entry.ID,
			"amount":    entry.Amount,
			"timestamp": entry.Timestamp,
		},
	})
}

// ---------- 归零 ----------

// ResetMantra 只清零终身累计，历史日志保留（区间统计照常可用）。
func (h *MantraHandler) ResetMantra(c *gin.Context) {
	id := c.Param("id")

	var mantra models.Mantra
	if err := h.DB.First(&mantra, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "項目不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		}
		return
	}

	mantra.TotalCount = 0
	if err := h.DB.Model(&mantra).Update("total_count", 0).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	// 日志还在，区间内的显示值不随归零消失
	util.Success(c, util.Response{
		"mantra": toMantraResp(&mantra, h.displayCountFor(&mantra)),
	})
}

// ---------- 置顶切换 ----------

func (h *MantraHandler) TogglePin(c *gin.Context) {
	id := c.Param("id")

	var mantra models.Mantra
	if err := h.DB.First(&mantra, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "項目不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		}
		return
	}

	mantra.IsPinned = !mantra.IsPinned
	if err := h.DB.Model(&mantra).Update("is_pinned", mantra.IsPinned).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"mantra": toMantraResp(&mantra, h.displayCountFor(&mantra)),
	})
}

// ---------- 部分更新 ----------

// UpdateMantra 只接受可变字段（name / target_count / is_pinned / color），
// 请求里出现 id 或 created_at 一律拒绝。
func (h *MantraHandler) UpdateMantra(c *gin.Context) {
	id := c.Param("id")

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	// 不可变字段拒绝整个请求
	for _, forbidden := range []string{"id", "created_at", "createdAt", "total_count"} {
		if _, ok := raw[forbidden]; ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "不可修改欄位: "+forbidden)
			return
		}
	}

	var mantra models.Mantra
	if err := h.DB.First(&mantra, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "項目不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		}
		return
	}

	updates := map[string]interface{}{}

	if v, ok := raw["name"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
			return
		}
		name = strings.TrimSpace(name)
		if err := util.ValidateName(name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請輸入項目名稱")
			return
		}
		mantra.Name = name
		updates["name"] = name
	}

	if v, ok := raw["target_count"]; ok {
		var target *int64
		if err := json.Unmarshal(v, &target); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
			return
		}
		if target != nil && *target <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "目標數量必須為正整數")
			return
		}
		mantra.TargetCount = target
		updates["target_count"] = target
	}

	if v, ok := raw["is_pinned"]; ok {
		var pinned bool
		if err := json.Unmarshal(v, &pinned); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
			return
		}
		mantra.IsPinned = pinned
		updates["is_pinned"] = pinned
	}

	if v, ok := raw["color"]; ok {
		var color string
		if err := json.Unmarshal(v, &color); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
			return
		}
		mantra.Color = color
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&mantra).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
			return
		}
	}

	util.Success(c, util.Response{
		"mantra": toMantraResp(&mantra, h.displayCountFor(&mantra)),
	})
}

// ---------- 删除 ----------

// DeleteMantra 删除项目但保留历史日志（孤儿日志供审计与区间统计）。
func (h *MantraHandler) DeleteMantra(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Delete(&models.Mantra{}, "id = ?", id)
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "刪除失敗")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "項目不存在")
		return
	}

	util.Success(c, util.Response{
		"message": "刪除成功",
	})
}
