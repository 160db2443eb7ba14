package syncx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/models"
)

// TestApply_Overwrite incoming 非空字段覆盖 current
func TestApply_Overwrite(t *testing.T) {
	current := ExternalConfig{SheetURL: "https://old.example/exec", Group: "台南一組"}
	incoming := ExternalConfig{SheetURL: "https://new.example/exec", Group: "台南二組"}

	merged, changed := Apply(current, incoming)

	if !changed {
		t.Error("changed = false, want true")
	}
	if merged.SheetURL != incoming.SheetURL || merged.Group != incoming.Group {
		t.Errorf("merged = %+v, want %+v", merged, incoming)
	}
}

// TestApply_EmptyIncoming 空 incoming 不应产生任何变更
func TestApply_EmptyIncoming(t *testing.T) {
	current := ExternalConfig{SheetURL: "https://old.example/exec", Group: "台南一組"}

	merged, changed := Apply(current, ExternalConfig{})

	if changed {
		t.Error("changed = true, want false")
	}
	if merged != current {
		t.Errorf("merged = %+v, want unchanged %+v", merged, current)
	}
}

// TestApply_Idempotent 同一份 incoming 应用两次，第二次必须 changed=false
func TestApply_Idempotent(t *testing.T) {
	incoming := ExternalConfig{SheetURL: "https://s.example/exec", Group: "G"}

	first, changed := Apply(ExternalConfig{}, incoming)
	if !changed {
		t.Fatal("first apply: changed = false, want true")
	}

	second, changed := Apply(first, incoming)
	if changed {
		t.Error("second apply: changed = true, want false")
	}
	if second != first {
		t.Errorf("second apply mutated config: %+v != %+v", second, first)
	}
}

// TestApply_PartialIncoming 只带 group 的连结不应清掉已存的 script URL
func TestApply_PartialIncoming(t *testing.T) {
	current := ExternalConfig{SheetURL: "https://keep.example/exec"}

	merged, changed := Apply(current, ExternalConfig{Group: "台南三組"})

	if !changed {
		t.Error("changed = false, want true")
	}
	if merged.SheetURL != current.SheetURL {
		t.Errorf("SheetURL = %q, want kept %q", merged.SheetURL, current.SheetURL)
	}
	if merged.Group != "台南三組" {
		t.Errorf("Group = %q, want 台南三組", merged.Group)
	}
}

// TestPublishLog 正常推送：payload 形状符合 Apps Script 协议
func TestPublishLog(t *testing.T) {
	var got SyncPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	entry := models.PracticeLog{
		ID:         "log-1",
		MantraID:   "m-1",
		MantraName: "大悲咒",
		Amount:     21,
		Timestamp:  time.Date(2025, 5, 1, 6, 30, 0, 0, time.UTC),
	}

	p := NewPublisher(5 * time.Second)
	if err := p.PublishLog(context.Background(), srv.URL, entry, "善信", "台南一組"); err != nil {
		t.Fatalf("PublishLog() error = %v", err)
	}

	if got.Action != ActionAddLog {
		t.Errorf("action = %q, want %q", got.Action, ActionAddLog)
	}
	if got.UserName != "善信" || got.UserGroup != "台南一組" {
		t.Errorf("user fields = %q/%q, want 善信/台南一組", got.UserName, got.UserGroup)
	}
	data, ok := got.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want object", got.Data)
	}
	if data["mantraName"] != "大悲咒" {
		t.Errorf("data.mantraName = %v, want 大悲咒", data["mantraName"])
	}
}

// TestPublishLog_EmptyURL 单机模式：没有端点时直接成功返回
func TestPublishLog_EmptyURL(t *testing.T) {
	p := NewPublisher(time.Second)
	if err := p.PublishLog(context.Background(), "", models.PracticeLog{}, "", ""); err != nil {
		t.Errorf("PublishLog(empty url) error = %v, want nil", err)
	}
}

// TestPublishLog_ServerError 端点 5xx 时返回错误（由调用方决定忽略）
func TestPublishLog_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPublisher(time.Second)
	err := p.PublishLog(context.Background(), srv.URL, models.PracticeLog{ID: "x"}, "", "")
	if err == nil {
		t.Error("PublishLog() error = nil, want error on 500")
	}
}
