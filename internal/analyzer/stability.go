package analyzer

import (
	"sort"

	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
)

// StabilityAnalyzer scores how consistently a creator publishes and how
// even the engagement quality of their uploads is.
type StabilityAnalyzer struct{}

func NewStabilityAnalyzer() *StabilityAnalyzer {
	return &StabilityAnalyzer{}
}

// TimeStability scores the regularity of publish intervals. Fewer than
// two timestamps give the neutral score. Volatility is measured relative
// to the larger of the mean interval and a one-day baseline cycle, so
// daily uploaders aren't punished for minute-level jitter.
func (a *StabilityAnalyzer) TimeStability(timestamps []int64) float64 {
	if len(timestamps) < 2 {
		return constants.StabilityConfig.NeutralScore
	}

	sorted := make([]int64, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals = append(intervals, float64(sorted[i]-sorted[i-1]))
	}

	std := util.StdDev(intervals)
	avg := util.Mean(intervals)
	baseline := constants.StabilityConfig.BaselineCycle.Seconds()
	if avg > baseline {
		baseline = avg
	}

	return util.Clamp01(1 / (1 + std/baseline))
}

// QualityStability scores the spread of the triple rate
// (likes+coins+favorites per view) across uploads. Videos without views
// are skipped; no usable samples give the neutral score.
func (a *StabilityAnalyzer) QualityStability(videos []domain.VideoStats) float64 {
	if len(videos) < 2 {
		return constants.StabilityConfig.NeutralScore
	}

	rates := make([]float64, 0, len(videos))
	for _, v := range videos {
		if v.Views > 0 {
			rates = append(rates, float64(v.Likes+v.Coins+v.Favorites)/float64(v.Views))
		}
	}
	if len(rates) == 0 {
		return constants.StabilityConfig.NeutralScore
	}

	std := util.StdDev(rates)
	avg := util.Mean(rates)
	relative := 1.0
	if avg > 0 {
		relative = std / avg
	}

	return util.Clamp01(1 / (1 + relative))
}

// Evaluate combines time and quality stability into an overall score and
// banding level.
func (a *StabilityAnalyzer) Evaluate(timestamps []int64, videos []domain.VideoStats) domain.StabilityResult {
	timeScore := a.TimeStability(timestamps)
	qualityScore := a.QualityStability(videos)
	overall := timeScore*constants.StabilityConfig.TimeWeight +
		qualityScore*constants.StabilityConfig.QualityWeight

	return domain.StabilityResult{
		TimeStability:    timeScore,
		QualityStability: qualityScore,
		Overall:          overall,
		Level:            stabilityLevel(overall),
		VideoCount:       len(videos),
	}
}

func stabilityLevel(overall float64) domain.StabilityLevel {
	switch {
	case overall >= constants.StabilityConfig.ExcellentScore:
		return domain.StabilityExcellent
	case overall >= constants.StabilityConfig.GoodScore:
		return domain.StabilityGood
	case overall >= constants.StabilityConfig.FairScore:
		return domain.StabilityFair
	default:
		return domain.StabilityNeedsWork
	}
}
