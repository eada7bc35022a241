// internal/service/ranking.go
package service

import (
	"math"
	"sort"
	"time"

	"ascent_backend/internal/model"

	"github.com/google/uuid"
)

// このファイルはランキング計算の純粋関数群です。
// DBから取得した完走レコードを集約・ソートするだけで、I/Oは行いません。

// daysToComplete は開始から完了までの日数を計算します。
// 切り上げで、同日内の完了でも最低1日とする (0にはならない)。
func daysToComplete(startedAt, completedAt time.Time) int {
	span := completedAt.Sub(startedAt)
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// hasTag はタグリストへの所属判定 (リスト全体の一致ではない)
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// filterByTag は指定タグを含む完走レコードだけを残します。空タグなら絞り込みなし。
func filterByTag(records []*model.CompletionRecord, tag string) []*model.CompletionRecord {
	if tag == "" {
		return records
	}
	filtered := make([]*model.CompletionRecord, 0, len(records))
	for _, rec := range records {
		if hasTag(rec.Tags, tag) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// aggregateCompletions は完走レコードをユーザーごとに集約します。
// エントリの並びはレコードの初出順 (決定的にするため。マップの反復順には依存しない)。
func aggregateCompletions(records []*model.CompletionRecord, usernames map[uuid.UUID]string) []*model.RankingEntry {
	entries := make([]*model.RankingEntry, 0)
	index := make(map[uuid.UUID]*model.RankingEntry)

	for _, rec := range records {
		entry, ok := index[rec.UserID]
		if !ok {
			entry = &model.RankingEntry{
				UserID:   rec.UserID,
				Username: usernames[rec.UserID],
			}
			index[rec.UserID] = entry
			entries = append(entries, entry)
		}
		entry.TotalCompleted++
		entry.TotalDays += rec.DaysToComplete
	}

	for _, entry := range entries {
		if entry.TotalCompleted > 0 {
			entry.AverageDays = float64(entry.TotalDays) / float64(entry.TotalCompleted)
		}
	}
	return entries
}

// sortAndRank はエントリをソートし、1始まりの順位を振り直します。
// 第1キー: 完走数の降順。第2キー: 平均日数の昇順 (少ないほうが上位)。
// 両キーが同値のエントリは安定ソートで元の並びを保ち、順位は共有せず連番を振る。
func sortAndRank(entries []*model.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalCompleted != entries[j].TotalCompleted {
			return entries[i].TotalCompleted > entries[j].TotalCompleted
		}
		return entries[i].AverageDays < entries[j].AverageDays
	})
	for i, entry := range entries {
		entry.Rank = i + 1
	}
}

// newZeroEntry は完走ゼロのユーザー用の合成エントリを作ります。
// 閲覧者自身、および friends スコープの全フレンドの可視性保証に使う。
func newZeroEntry(userID uuid.UUID, username string) *model.RankingEntry {
	return &model.RankingEntry{
		UserID:   userID,
		Username: username,
	}
}
