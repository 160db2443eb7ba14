package syncx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
)

// SyncPayload 发往外部同步端点的请求体，沿用前端既有的 Apps Script 协议。
type SyncPayload struct {
	Action    string      `json:"action"` // ADD_LOG / SYNC_STATE
	UserName  string      `json:"userName,omitempty"`
	UserGroup string      `json:"userGroup,omitempty"`
	Data      interface{} `json:"data"`
}

const (
	ActionAddLog    = "ADD_LOG"
	ActionSyncState = "SYNC_STATE"
)

// Publisher 把计数事件推送到外部同步端点（尽力而为）。
// 本地写入才是本次会话的真实来源：推送失败只记 log，绝不回滚、不阻塞后续操作。
type Publisher struct {
	Client *http.Client
}

func NewPublisher(timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Publisher{
		Client: &http.Client{Timeout: timeout},
	}
}

// PublishLog 同步发送一条计数日志，调用方通常放在 goroutine 里。
func (p *Publisher) PublishLog(ctx context.Context, url string, entry models.PracticeLog, userName, userGroup string) error {
	if url == "" {
		return nil // 单机模式
	}

	payload := SyncPayload{
		Action:    ActionAddLog,
		UserName:  userName,
		UserGroup: userGroup,
		Data: map[string]interface{}{
			"id":         entry.ID,
			"mantraId":   entry.MantraID,
			"mantraName": entry.MantraName,
			"amount":     entry.Amount,
			"timestamp":  entry.Timestamp.Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	// Apps Script 端点用 text/plain 可以避免重定向时丢失 body 的问题
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post sync payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sync endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// PublishLogAsync 发后不理：在后台 goroutine 里推送，失败只记 log。
func (p *Publisher) PublishLogAsync(url string, entry models.PracticeLog, userName, userGroup string) {
	if url == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.Client.Timeout)
		defer cancel()
		if err := p.PublishLog(ctx, url, entry, userName, userGroup); err != nil {
			log.Printf("sync publish failed (ignored): %v", err)
		}
	}()
}
