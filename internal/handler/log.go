package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler 历史纪录查询（只读，日志是 append-only）
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

type logResp struct {
	ID         string    `json:"id"`
	MantraID   string    `json:"mantra_id"`
	MantraName string    `json:"mantra_name"`
	Amount     int64     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// ListLogs 查询计数纪录，最新在前，支持按项目筛选和分页
func (h *LogHandler) ListLogs(c *gin.Context) {
	// 分页参数
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("page_size", "50")
	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(sizeStr)
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.PracticeLog{})
	if mantraID := c.Query("mantra_id"); mantraID != "" {
		base = base.Where("mantra_id = ?", mantraID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	var logs []models.PracticeLog
	if err := base.Session(&gorm.Session{}).
		Order("timestamp DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	items := make([]logResp, 0, len(logs))
	for i := range logs {
		items = append(items, logResp{
			ID:         logs[i].ID,
			MantraID:   logs[i].MantraID,
			MantraName: logs[i].MantraName,
			Amount:     logs[i].Amount,
			Timestamp:  logs[i].Timestamp,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
