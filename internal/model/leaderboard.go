// internal/model/leaderboard.go
package model

import "github.com/google/uuid"

// LeaderboardScope はランキングの対象範囲
type LeaderboardScope string

const (
	ScopeAll     LeaderboardScope = "all"
	ScopeFriends LeaderboardScope = "friends"
)

// RankingEntry はリーダーボードの1行 (導出値、非永続。リクエストごとに再計算される)
type RankingEntry struct {
	Rank           int       `json:"rank"` // ソート後の1始まりの順位。同値でも順位は共有しない
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	TotalCompleted int       `json:"total_completed"`
	TotalDays      int       `json:"total_days"`
	AverageDays    float64   `json:"average_days"` // TotalCompleted = 0 のときは 0
}

// LeaderboardQuery はリーダーボード取得のクエリパラメータ
type LeaderboardQuery struct {
	Scope    LeaderboardScope
	Category string // 空なら絞り込みなし (完全一致)
	Tag      string // 空なら絞り込みなし (タグリストへの所属判定)
}

// LeaderboardResponse はリーダーボードAPIのレスポンス
type LeaderboardResponse struct {
	Rankings []*RankingEntry `json:"rankings"`
	// 閲覧者自身の Rankings 内での位置。合成ゼロエントリにより必ず存在するはずだが、
	// 万一欠けた場合は null を返す
	CurrentUserIndex *int             `json:"current_user_index"`
	Scope            LeaderboardScope `json:"scope"`
	Category         string           `json:"category,omitempty"`
	Tag              string           `json:"tag,omitempty"`
}

// FilterOptionsResponse はフィルタ語彙APIのレスポンス。
// 完走レコードとロードマップ双方に出現した値の和集合。
type FilterOptionsResponse struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}
