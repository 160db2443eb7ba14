package handler

import (
	"net/http"
	"strings"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler 使用者显示名称 / 组别 / 同步端点设置
type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

type updateProfileReq struct {
	Name  string `json:"name" binding:"max=64"`
	Group string `json:"group" binding:"max=64"`
}

type updateSheetReq struct {
	URL string `json:"url" binding:"max=512"`
}

// GetProfile 返回使用者资料与连线状态
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	name, err := getSetting(h.DB, models.SettingUserName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}
	if name == "" {
		name = "善信" // 预设称呼
	}
	group, err := getSetting(h.DB, models.SettingUserGroup)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}
	sheetURL, err := getSetting(h.DB, models.SettingSheetURL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	util.Success(c, util.Response{
		"name":      name,
		"group":     group,
		"connected": sheetURL != "", // 已設定同步端點即視為「已連線」
	})
}

// UpdateProfile 更新名称与组别
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Group = strings.TrimSpace(req.Group)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := setSetting(tx, models.SettingUserName, req.Name); err != nil {
			return err
		}
		return setSetting(tx, models.SettingUserGroup, req.Group)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"message": "設定已儲存",
	})
}

// GetSheet 返回同步端点设置
func (h *ProfileHandler) GetSheet(c *gin.Context) {
	sheetURL, err := getSetting(h.DB, models.SettingSheetURL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	util.Success(c, util.Response{
		"url": sheetURL,
	})
}

// UpdateSheet 设置（或清空）同步端点 URL
func (h *ProfileHandler) UpdateSheet(c *gin.Context) {
	var req updateSheetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	url := strings.TrimSpace(req.URL)
	if url != "" && !strings.HasPrefix(url, "https://") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "同步端點必須是 https 連結")
		return
	}

	if err := setSetting(h.DB, models.SettingSheetURL, url); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"message": "設定已儲存",
	})
}
