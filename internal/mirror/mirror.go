// internal/mirror/mirror.go
//
// ブラウザのローカルストレージに相当する、クライアント側の進捗ミラーです。
// UIの即時フィードバックとオフライン時のフォールバックのために、
// ステップ完了をまずローカルに同期書き込みし、サーバーへの完走記録は
// fire-and-forget で送ります (失敗してもローカル状態は巻き戻さない)。
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// CompletionRecorder はサーバー側の完走台帳への昇格を行うインターフェースです。
// 実装は HTTPRecorder (POST /leaderboard/complete) を参照。
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, cardID, cardName string) error
}

// CardStatus は現在追跡中のカードの状態
type CardStatus string

const (
	StatusNotStarted CardStatus = "not_started"
	StatusInProgress CardStatus = "in_progress"
	StatusCompleted  CardStatus = "completed"
)

// state はファイルに永続化されるミラーの中身。
type state struct {
	// カードID → ステップ番号 → 完了済みか
	StepDone map[string]map[int]bool `json:"step_done"`
	// カードID → 初回ロード時に一度だけ記録するステップ総数のスナップショット
	TotalSteps map[string]int `json:"total_steps"`
	// これまでに一度でも100%に到達した識別子 (skill:<id> / roadmap:<id>) の集合。
	// 追記専用で、カードが削除されても縮まない。生涯実績の基礎となる
	EverCompleted []string `json:"ever_completed"`
}

// Mirror はファイルに永続化されるローカル進捗ミラーです。
// すべての変更はネットワーク呼び出しと独立に、先にローカルへ書かれる。
type Mirror struct {
	mu       sync.Mutex
	path     string
	state    state
	recorder CompletionRecorder
	logger   *slog.Logger
}

// Open は指定パスのミラーを読み込みます。ファイルが無ければ空の状態で始める。
// recorder が nil の場合、サーバーへの昇格は行わない (完全オフライン)。
func Open(path string, recorder CompletionRecorder, logger *slog.Logger) (*Mirror, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mirror{
		path:     path,
		recorder: recorder,
		logger:   logger,
		state: state{
			StepDone:   make(map[string]map[int]bool),
			TotalSteps: make(map[string]int),
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("mirror.Open: %w", err)
	}
	if err := json.Unmarshal(data, &m.state); err != nil {
		return nil, fmt.Errorf("mirror.Open: corrupt mirror file: %w", err)
	}
	if m.state.StepDone == nil {
		m.state.StepDone = make(map[string]map[int]bool)
	}
	if m.state.TotalSteps == nil {
		m.state.TotalSteps = make(map[string]int)
	}
	return m, nil
}

// save は状態をファイルへ同期的に書き出します。呼び出し元がロックを保持していること。
func (m *Mirror) save() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("mirror.save: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("mirror.save: %w", err)
	}
	return nil
}

// SnapshotTotalSteps はカードのステップ総数を記録します。
// 初回だけ有効で、以後の呼び出しでは上書きしない (100%判定の分母を固定するため)。
func (m *Mirror) SnapshotTotalSteps(cardID string, total int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.state.TotalSteps[cardID]; ok {
		return nil
	}
	if total <= 0 {
		return fmt.Errorf("mirror.SnapshotTotalSteps: invalid total %d for %q", total, cardID)
	}
	m.state.TotalSteps[cardID] = total
	return m.save()
}

// MarkStep はステップの完了/未完了をローカルに記録します。
// 100%への遷移エッジを検出した初回だけ、生涯実績集合への追記と
// サーバーへの完走記録 (fire-and-forget) を行います。
// cardName はサーバー記録用の表示名。
func (m *Mirror) MarkStep(ctx context.Context, cardID, cardName string, stepIndex int, done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	steps, ok := m.state.StepDone[cardID]
	if !ok {
		steps = make(map[int]bool)
		m.state.StepDone[cardID] = steps
	}

	wasComplete := m.isCompleteLocked(cardID)
	if done {
		steps[stepIndex] = true
	} else {
		delete(steps, stepIndex)
	}
	nowComplete := m.isCompleteLocked(cardID)

	// ローカル書き込みはネットワークと無関係に必ず先に成立させる
	if err := m.save(); err != nil {
		return err
	}

	// 「今ちょうど100%になった」エッジだけを見る。現在100%かどうかではない
	if nowComplete && !wasComplete && !m.everCompletedLocked(cardID) {
		m.state.EverCompleted = append(m.state.EverCompleted, cardID)
		if err := m.save(); err != nil {
			return err
		}
		m.promote(ctx, cardID, cardName)
	}
	return nil
}

// promote はサーバー側の台帳へ fire-and-forget で完走を昇格します。
// 失敗はログに残すだけで、ローカル状態は巻き戻さない。
func (m *Mirror) promote(ctx context.Context, cardID, cardName string) {
	if m.recorder == nil {
		return
	}
	go func() {
		if err := m.recorder.RecordCompletion(ctx, cardID, cardName); err != nil {
			m.logger.Warn("Failed to promote completion to server (keeping local state)",
				"card_id", cardID, "error", err)
		}
	}()
}

// RemoveCard は追跡中のカードをローカルから取り除きます。
// ライブ集計からは消えるが、生涯実績集合 (EverCompleted) には触れない。
func (m *Mirror) RemoveCard(cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.state.StepDone, cardID)
	delete(m.state.TotalSteps, cardID)
	return m.save()
}

// Status は現在追跡中のカードの状態をステップマップから再導出します。
func (m *Mirror) Status(cardID string) CardStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked(cardID)
}

func (m *Mirror) statusLocked(cardID string) CardStatus {
	if m.isCompleteLocked(cardID) {
		return StatusCompleted
	}
	if len(m.state.StepDone[cardID]) > 0 {
		return StatusInProgress
	}
	return StatusNotStarted
}

func (m *Mirror) isCompleteLocked(cardID string) bool {
	total, ok := m.state.TotalSteps[cardID]
	if !ok || total <= 0 {
		return false
	}
	done := 0
	for _, d := range m.state.StepDone[cardID] {
		if d {
			done++
		}
	}
	return done == total
}

func (m *Mirror) everCompletedLocked(cardID string) bool {
	for _, id := range m.state.EverCompleted {
		if id == cardID {
			return true
		}
	}
	return false
}

// LiveCounts は現在追跡中のカードから「習得済み」「学習中」の件数を再導出します。
// カードを削除すれば減る。生涯実績 (LifetimeCompletedCount) とは別の数字で、
// 両者は一致しないことがある。
func (m *Mirror) LiveCounts() (completed, inProgress int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for cardID := range m.state.TotalSteps {
		switch m.statusLocked(cardID) {
		case StatusCompleted:
			completed++
		case StatusInProgress:
			inProgress++
		}
	}
	return completed, inProgress
}

// LifetimeCompletedCount はこれまでに一度でも100%に到達した識別子の数を返します。
// 単調非減少で、カードの削除やステップの巻き戻しでは決して減らない。
func (m *Mirror) LifetimeCompletedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.EverCompleted)
}

// LifetimeCompleted は生涯実績集合のコピーを返します (追記順)。
func (m *Mirror) LifetimeCompleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.state.EverCompleted))
	copy(result, m.state.EverCompleted)
	return result
}
