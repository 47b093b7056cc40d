package analyzer

import (
	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
)

// InteractionAnalyzer grades a creator's engagement rates against
// reference benchmark tiers.
type InteractionAnalyzer struct {
	benchmarks domain.Benchmarks
}

func NewInteractionAnalyzer(benchmarks domain.Benchmarks) *InteractionAnalyzer {
	return &InteractionAnalyzer{benchmarks: benchmarks}
}

func (a *InteractionAnalyzer) Benchmarks() domain.Benchmarks {
	return a.benchmarks
}

// Analyze averages per-view engagement rates across the given uploads.
// Videos without views contribute to the count but not to the rates.
// Returns nil when there is nothing to analyze.
func (a *InteractionAnalyzer) Analyze(videos []domain.VideoStats) *domain.InteractionMetrics {
	if len(videos) == 0 {
		return nil
	}

	var likeRates, coinRates, favoriteRates, commentRates, densities, views []float64
	for _, v := range videos {
		views = append(views, float64(v.Views))
		if v.Views == 0 {
			continue
		}
		view := float64(v.Views)
		likeRates = append(likeRates, float64(v.Likes)/view)
		coinRates = append(coinRates, float64(v.Coins)/view)
		favoriteRates = append(favoriteRates, float64(v.Favorites)/view)
		commentRates = append(commentRates, float64(v.Comments)/view)
		densities = append(densities, float64(v.Danmaku)/view*60)
	}

	avgViews := util.Mean(views)
	return &domain.InteractionMetrics{
		LikeRate:       util.Mean(likeRates),
		CoinRate:       util.Mean(coinRates),
		FavoriteRate:   util.Mean(favoriteRates),
		CommentRate:    util.Mean(commentRates),
		DanmakuDensity: util.Mean(densities),
		AvgViews:       avgViews,
		VideoCount:     len(videos),
		Stage:          growthStage(avgViews),
	}
}

// MetricScore places a rate on a 0..1 scale between the startup and
// mature benchmark values.
func (a *InteractionAnalyzer) MetricScore(value, startup, current float64) float64 {
	switch {
	case value >= current:
		return 1.0
	case value >= startup && current > startup:
		return (value - startup) / (current - startup)
	case startup > 0:
		return util.Clamp01(value / startup)
	default:
		return 0
	}
}

// DanmakuScore places a danmaku density on a 0..1 scale; twice the
// reference density scores full marks.
func (a *InteractionAnalyzer) DanmakuScore(density float64) float64 {
	bench := a.benchmarks.DanmakuDensity
	switch {
	case bench <= 0:
		return 0
	case density >= bench*2:
		return 1.0
	case density >= bench:
		return 0.5 + (density-bench)/bench*0.5
	default:
		return density / bench
	}
}

// Suggestions returns up to three improvement hints based on which rates
// fall below the startup benchmarks.
func (a *InteractionAnalyzer) Suggestions(m *domain.InteractionMetrics) []string {
	var suggestions []string
	if m == nil {
		return suggestions
	}

	if m.LikeRate < a.benchmarks.Startup.LikeRate {
		suggestions = append(suggestions, "Restructure the outro to explicitly ask for likes")
	}
	if m.CoinRate < a.benchmarks.Startup.CoinRate {
		suggestions = append(suggestions, "Lean into harder-to-find content to raise coin-worthiness")
	}
	if m.DanmakuDensity < 3 {
		suggestions = append(suggestions, "Plant more discussion hooks mid-video to invite danmaku")
	}

	general := []string{
		"Keep a steady upload cadence to build viewing habits",
		"Study your highest-engagement uploads and repeat what worked",
		"Reply in the comment section to keep viewers invested",
	}
	for _, s := range general {
		if len(suggestions) >= 3 {
			break
		}
		suggestions = append(suggestions, s)
	}
	return suggestions[:min(3, len(suggestions))]
}

func growthStage(avgViews float64) domain.GrowthStage {
	switch {
	case avgViews < constants.GrowthStageConfig.ExplorerMaxViews:
		return domain.StageExplorer
	case avgViews < constants.GrowthStageConfig.RisingMaxViews:
		return domain.StageRising
	default:
		return domain.StageEstablished
	}
}
