package handler

import (
	"net/http"
	"strings"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/syncx"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BootstrapHandler 消费深链接配置（魔法连结）。
// 前端初次载入发现 ?script= / ?group= 参数时打一次这个接口，
// 依返回的 changed 决定要不要把地址栏清干净，保证连结只生效一次。
type BootstrapHandler struct {
	DB *gorm.DB
}

func NewBootstrapHandler(db *gorm.DB) *BootstrapHandler {
	return &BootstrapHandler{DB: db}
}

type bootstrapReq struct {
	Script string `json:"script" binding:"max=512"` // 同步端点 URL
	Group  string `json:"group" binding:"max=64"`   // 组别
}

// Bootstrap 把外部配置合并进持久化设置，幂等。
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	var req bootstrapReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	sheetURL, err := getSetting(h.DB, models.SettingSheetURL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}
	group, err := getSetting(h.DB, models.SettingUserGroup)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	current := syncx.ExternalConfig{SheetURL: sheetURL, Group: group}
	incoming := syncx.ExternalConfig{
		SheetURL: strings.TrimSpace(req.Script),
		Group:    strings.TrimSpace(req.Group),
	}

	merged, changed := syncx.Apply(current, incoming)

	if changed {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			if err := setSetting(tx, models.SettingSheetURL, merged.SheetURL); err != nil {
				return err
			}
			return setSetting(tx, models.SettingUserGroup, merged.Group)
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
			return
		}
	}

	util.Success(c, util.Response{
		"changed":   changed,
		"connected": merged.SheetURL != "",
		"group":     merged.Group,
	})
}
