package handler

import (
	"net/http"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PeriodHandler 负责全局日期区间（愿力期限）的读写
type PeriodHandler struct {
	DB *gorm.DB
}

func NewPeriodHandler(db *gorm.DB) *PeriodHandler {
	return &PeriodHandler{DB: db}
}

type setPeriodReq struct {
	Label string `json:"label" binding:"max=64"`
	Start string `json:"start"` // YYYY-MM-DD，可空
	End   string `json:"end"`   // YYYY-MM-DD，可空
}

// GetPeriod 返回当前区间设置
func (h *PeriodHandler) GetPeriod(c *gin.Context) {
	window, err := loadWindow(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "讀取區間設定失敗")
		return
	}

	resp := gin.H{
		"label":  window.Label,
		"active": window.Active(),
	}
	if window.Start != nil {
		resp["start"] = window.Start.Format("2006-01-02")
	}
	if window.End != nil {
		resp["end"] = window.End.Format("2006-01-02")
	}

	util.Success(c, util.Response{
		"period": resp,
	})
}

// SetPeriod 设置区间。三个字段都可空：只给 label 就是纯标注模式。
func (h *PeriodHandler) SetPeriod(c *gin.Context) {
	var req setPeriodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	if req.Start != "" {
		if err := util.ValidateDate(req.Start); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "開始日期格式錯誤，應為 YYYY-MM-DD")
			return
		}
	}
	if req.End != "" {
		if err := util.ValidateDate(req.End); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "結束日期格式錯誤，應為 YYYY-MM-DD")
			return
		}
	}
	if req.Start != "" && req.End != "" {
		s, _ := time.Parse("2006-01-02", req.Start)
		e, _ := time.Parse("2006-01-02", req.End)
		if e.Before(s) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "結束日期不能早於開始日期")
			return
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := setSetting(tx, models.SettingPeriodLabel, req.Label); err != nil {
			return err
		}
		if err := setSetting(tx, models.SettingPeriodStart, req.Start); err != nil {
			return err
		}
		return setSetting(tx, models.SettingPeriodEnd, req.End)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"message": "區間已更新",
	})
}

// ClearPeriod 清除区间（回到终身累计显示）
func (h *PeriodHandler) ClearPeriod(c *gin.Context) {
	err := delSettings(h.DB,
		models.SettingPeriodLabel,
		models.SettingPeriodStart,
		models.SettingPeriodEnd,
	)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"message": "區間已清除",
	})
}
