package contracts

import "sort"

// RankingSnapshot is a point-in-time ticker → rank table.
// It is built once per advisory call and never changes afterwards, so every
// recommendation of that call sees the same ranking.
// ⭐ SSOT: 랭킹 스냅샷은 불변 값으로만 전달
type RankingSnapshot struct {
	ranks map[string]int
}

// RankedTicker is one row of a ranking snapshot
type RankedTicker struct {
	Ticker string `json:"ticker"`
	Rank   int    `json:"rank"` // 1-based
}

// NewRankingSnapshot copies ranks into a frozen snapshot. Non-positive ranks are dropped.
func NewRankingSnapshot(ranks map[string]int) RankingSnapshot {
	frozen := make(map[string]int, len(ranks))
	for ticker, rank := range ranks {
		if rank > 0 {
			frozen[ticker] = rank
		}
	}
	return RankingSnapshot{ranks: frozen}
}

// Rank looks up the rank of a ticker
func (s RankingSnapshot) Rank(ticker string) (int, bool) {
	rank, ok := s.ranks[ticker]
	return rank, ok
}

// Len returns the number of ranked tickers
func (s RankingSnapshot) Len() int {
	return len(s.ranks)
}

// Sorted returns all rows by rank ascending (ties by ticker)
func (s RankingSnapshot) Sorted() []RankedTicker {
	rows := make([]RankedTicker, 0, len(s.ranks))
	for ticker, rank := range s.ranks {
		rows = append(rows, RankedTicker{Ticker: ticker, Rank: rank})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rank != rows[j].Rank {
			return rows[i].Rank < rows[j].Rank
		}
		return rows[i].Ticker < rows[j].Ticker
	})
	return rows
}

// Map returns a copy of the underlying table
func (s RankingSnapshot) Map() map[string]int {
	out := make(map[string]int, len(s.ranks))
	for k, v := range s.ranks {
		out[k] = v
	}
	return out
}
