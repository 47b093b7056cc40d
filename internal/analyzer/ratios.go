// Package analyzer turns raw per-video statistics into derived metrics:
// per-view interaction ratios, creator stability scores, and aggregated
// engagement levels. Everything here is a pure transform over already
// resolved values; fetching and rendering live elsewhere.
package analyzer

import "github.com/kapu/bilibili-analyzer-go/internal/domain"

// ComputeRatios derives the six per-view interaction ratios for a single
// video. A video with zero views yields all-zero ratios. Inputs are
// trusted to carry non-negative counters; the caller owns validation.
func ComputeRatios(stats domain.VideoStats) domain.ComparisonRow {
	row := domain.ComparisonRow{Stats: stats}
	if stats.Views == 0 {
		return row
	}

	views := float64(stats.Views)
	row.Ratios = domain.RatioSet{
		LikeRate:     float64(stats.Likes) / views,
		CoinRate:     float64(stats.Coins) / views,
		FavoriteRate: float64(stats.Favorites) / views,
		CommentRate:  float64(stats.Comments) / views,
		ShareRate:    float64(stats.Shares) / views,
		DanmakuRate:  float64(stats.Danmaku) / views,
	}
	return row
}

// Aggregate applies ComputeRatios to every record, preserving input order.
// It is agnostic to the number of inputs; whether the result feeds a
// single-video report or a side-by-side comparison is the caller's call.
func Aggregate(stats []domain.VideoStats) []domain.ComparisonRow {
	rows := make([]domain.ComparisonRow, len(stats))
	for i, s := range stats {
		rows[i] = ComputeRatios(s)
	}
	return rows
}
