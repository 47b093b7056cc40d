package domain

import "time"

// RatioSet expresses each interaction counter as a fraction of views.
// Every field is 0.0 for a video with no views.
type RatioSet struct {
	LikeRate     float64 `json:"like_rate"`
	CoinRate     float64 `json:"coin_rate"`
	FavoriteRate float64 `json:"favorite_rate"`
	CommentRate  float64 `json:"comment_rate"`
	ShareRate    float64 `json:"share_rate"`
	DanmakuRate  float64 `json:"danmaku_rate"`
}

// ComparisonRow pairs a video's raw statistics with its derived ratios.
// Rows are produced in input order; the first row is the reference side
// of any later rendering.
type ComparisonRow struct {
	Stats  VideoStats `json:"stats"`
	Ratios RatioSet   `json:"ratios"`
}

type StabilityLevel string

const (
	StabilityExcellent StabilityLevel = "excellent"
	StabilityGood      StabilityLevel = "good"
	StabilityFair      StabilityLevel = "fair"
	StabilityNeedsWork StabilityLevel = "needs_work"
)

// StabilityResult scores how regular a creator's output is, both in
// publish cadence and in per-video engagement quality.
type StabilityResult struct {
	TimeStability    float64        `json:"time_stability"`
	QualityStability float64        `json:"quality_stability"`
	Overall          float64        `json:"overall_stability"`
	Level            StabilityLevel `json:"stability_level"`
	VideoCount       int            `json:"video_count"`
}

type GrowthStage string

const (
	StageExplorer    GrowthStage = "explorer"
	StageRising      GrowthStage = "rising"
	StageEstablished GrowthStage = "established"
)

// InteractionMetrics aggregates per-view engagement rates across a
// creator's recent uploads.
type InteractionMetrics struct {
	LikeRate       float64     `json:"like_rate"`
	CoinRate       float64     `json:"coin_rate"`
	FavoriteRate   float64     `json:"favorite_rate"`
	CommentRate    float64     `json:"comment_rate"`
	DanmakuDensity float64     `json:"danmaku_density"`
	AvgViews       float64     `json:"avg_views"`
	VideoCount     int         `json:"video_count"`
	Stage          GrowthStage `json:"stage"`
}

// EngagementStandards is one tier of reference engagement rates.
type EngagementStandards struct {
	LikeRate      float64 `json:"like_rate_benchmark"`
	CoinRate      float64 `json:"coin_rate_benchmark"`
	GoodThreshold float64 `json:"good_performance_threshold"`
}

// Benchmarks carries the startup and mature reference tiers used to
// grade interaction metrics.
type Benchmarks struct {
	Startup        EngagementStandards `json:"startup"`
	Current        EngagementStandards `json:"current"`
	DanmakuDensity float64             `json:"danmaku_density"`
}

// CreatorSnapshot is the export payload for one analysis run.
type CreatorSnapshot struct {
	RunID       string              `json:"run_id"`
	Mid         int64               `json:"mid"`
	Name        string              `json:"name"`
	Follower    int64               `json:"follower"`
	CreatedAt   time.Time           `json:"created_at"`
	VideoCount  int                 `json:"video_count"`
	Stability   *StabilityResult    `json:"stability_analysis,omitempty"`
	Interaction *InteractionMetrics `json:"interaction_metrics,omitempty"`
	Videos      []*VideoDetail      `json:"videos"`
}
