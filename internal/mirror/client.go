// internal/mirror/client.go
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPRecorder は完走台帳API (POST /leaderboard/complete) への昇格クライアントです。
type HTTPRecorder struct {
	baseURL string
	token   string // Bearer トークン
	client  *http.Client
}

func NewHTTPRecorder(baseURL, token string) *HTTPRecorder {
	return &HTTPRecorder{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RecordCompletion はカードIDをサーバーの完走記録に昇格します。
// "roadmap:<uuid>" 形式のみ対象。"skill:<id>" (組み込みスキル) はサーバー側に
// 対応するロードマップが無いため送らない。
func (r *HTTPRecorder) RecordCompletion(ctx context.Context, cardID, cardName string) error {
	roadmapID, ok := strings.CutPrefix(cardID, "roadmap:")
	if !ok {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"roadmap_id":   roadmapID,
		"roadmap_name": cardName,
	})
	if err != nil {
		return fmt.Errorf("mirror.HTTPRecorder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/leaderboard/complete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mirror.HTTPRecorder: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("mirror.HTTPRecorder: %w", err)
	}
	defer resp.Body.Close()

	// 冪等な再送は200、新規作成は201。それ以外は失敗として呼び出し元がログに残す
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("mirror.HTTPRecorder: unexpected status %d", resp.StatusCode)
	}
	return nil
}
