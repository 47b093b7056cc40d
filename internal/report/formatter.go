// Package report renders analysis results for humans: plain-text
// reports for the terminal and bar-chart pages for the browser.
package report

import (
	"fmt"
	"strings"

	"github.com/kapu/bilibili-analyzer-go/internal/analyzer"
	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
)

const divider = "══════════════════════════════════════"

const maxTitleRunes = 25

// Formatter renders terminal reports.
type Formatter struct {
	interaction *analyzer.InteractionAnalyzer
}

func NewFormatter(interaction *analyzer.InteractionAnalyzer) *Formatter {
	return &Formatter{interaction: interaction}
}

// FormatVideo renders a single-video analysis: the raw counters plus the
// per-view ratio breakdown.
func (f *Formatter) FormatVideo(detail *domain.VideoDetail, row domain.ComparisonRow) string {
	var sb strings.Builder
	sb.WriteString("📊 Video analysis\n")
	sb.WriteString(divider + "\n")
	f.writeVideoBlock(&sb, "🎬", detail)

	sb.WriteString("\n📈 Per-view ratios:\n")
	for _, r := range ratioLines(row.Ratios) {
		sb.WriteString(fmt.Sprintf("   %s: %s\n", r.label, formatRatio(r.value)))
	}
	return sb.String()
}

// FormatComparison renders the two-video comparison: per-video blocks,
// absolute differences with signed percentages, and ratio-vs-ratio
// lines. The first row is the reference side.
func (f *Formatter) FormatComparison(details []*domain.VideoDetail, rows []domain.ComparisonRow) string {
	var sb strings.Builder
	sb.WriteString("📊 Video comparison\n")
	sb.WriteString(divider + "\n")

	for i, detail := range details[:2] {
		if i > 0 {
			sb.WriteString("\n")
		}
		f.writeVideoBlock(&sb, fmt.Sprintf("🎬 Video %d -", i+1), detail)
	}

	a, b := rows[0].Stats, rows[1].Stats
	sb.WriteString("\n📈 Count differences:\n")
	for _, c := range countLines(a, b) {
		sb.WriteString("   " + diffLine(c.label, c.a, c.b) + "\n")
	}

	sb.WriteString("\n📊 Ratio comparison:\n")
	ra, rb := ratioLines(rows[0].Ratios), ratioLines(rows[1].Ratios)
	for i := range ra {
		sb.WriteString("   " + ratioLine(ra[i].label, ra[i].value, rb[i].value) + "\n")
	}
	return sb.String()
}

// FormatStability renders a creator's stability report with score
// gauges and cadence advice.
func (f *Formatter) FormatStability(name string, r domain.StabilityResult) string {
	width := constants.StabilityConfig.GaugeWidth

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Stability report for %s\n", name))
	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("⏰ Publish cadence:   %s\n   %s\n",
		util.FormatPercent(r.TimeStability), util.Gauge(r.TimeStability, width)))
	sb.WriteString(fmt.Sprintf("⭐ Quality evenness:  %s\n   %s\n",
		util.FormatPercent(r.QualityStability), util.Gauge(r.QualityStability, width)))
	sb.WriteString(fmt.Sprintf("🏆 Overall:           %s (%s)\n   %s\n",
		util.FormatPercent(r.Overall), stabilityLabel(r.Level), util.Gauge(r.Overall, width)))

	sb.WriteString("\n💡 Advice:\n")
	sb.WriteString("   " + stabilityAdvice(r.Level) + "\n")
	sb.WriteString(fmt.Sprintf("\n📈 Based on %d videos\n", r.VideoCount))
	return sb.String()
}

// FormatInteraction renders a creator's engagement report against the
// benchmark tiers, with up to three improvement suggestions.
func (f *Formatter) FormatInteraction(name string, m *domain.InteractionMetrics) string {
	bench := f.interaction.Benchmarks()
	width := constants.StabilityConfig.GaugeWidth

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎯 Interaction report for %s\n", name))
	sb.WriteString(divider + "\n")
	sb.WriteString("📊 Profile\n")
	sb.WriteString(fmt.Sprintf("   Videos analyzed: %d\n", m.VideoCount))
	sb.WriteString(fmt.Sprintf("   Average views:   %s\n", util.FormatCount(int64(m.AvgViews))))
	sb.WriteString(fmt.Sprintf("   Growth stage:    %s\n", stageLabel(m.Stage)))

	sb.WriteString("\n💬 Engagement\n")
	likeScore := f.interaction.MetricScore(m.LikeRate, bench.Startup.LikeRate, bench.Current.LikeRate)
	sb.WriteString(fmt.Sprintf("👍 Like rate: %s\n   %s\n", util.FormatPercent(m.LikeRate), util.Gauge(likeScore, width)))
	sb.WriteString(fmt.Sprintf("   reference: new %s → mature %s\n",
		util.FormatPercent(bench.Startup.LikeRate), util.FormatPercent(bench.Current.LikeRate)))

	coinScore := f.interaction.MetricScore(m.CoinRate, bench.Startup.CoinRate, bench.Current.CoinRate)
	sb.WriteString(fmt.Sprintf("🪙 Coin rate: %s\n   %s\n", util.FormatPercent(m.CoinRate), util.Gauge(coinScore, width)))
	sb.WriteString(fmt.Sprintf("   reference: new %s → mature %s\n",
		util.FormatPercent(bench.Startup.CoinRate), util.FormatPercent(bench.Current.CoinRate)))

	danmakuScore := f.interaction.DanmakuScore(m.DanmakuDensity)
	sb.WriteString(fmt.Sprintf("💬 Danmaku density: %.1f/min\n   %s\n", m.DanmakuDensity, util.Gauge(danmakuScore, width)))
	sb.WriteString(fmt.Sprintf("   active reference: >%.0f/min\n", bench.DanmakuDensity))

	suggestions := f.interaction.Suggestions(m)
	if len(suggestions) > 0 {
		sb.WriteString("\n💡 Suggestions:\n")
		for i, s := range suggestions {
			sb.WriteString(fmt.Sprintf("   %d. %s\n", i+1, s))
		}
	}
	return sb.String()
}

func (f *Formatter) writeVideoBlock(sb *strings.Builder, prefix string, detail *domain.VideoDetail) {
	s := detail.Stats
	sb.WriteString(fmt.Sprintf("%s %s\n", prefix, detail.Bvid))
	if detail.Title != "" {
		sb.WriteString(fmt.Sprintf("   Title:    %s\n", util.TruncateString(detail.Title, maxTitleRunes)))
	}
	if detail.Owner.Name != "" {
		sb.WriteString(fmt.Sprintf("   Uploader: %s\n", detail.Owner.Name))
	}
	if detail.Duration > 0 {
		sb.WriteString(fmt.Sprintf("   Length:   %s\n", util.FormatVideoDuration(detail.Duration)))
	}
	sb.WriteString(fmt.Sprintf("   Views:    %s\n", util.FormatCount(s.Views)))
	sb.WriteString(fmt.Sprintf("   Likes: %s | Coins: %s | Favorites: %s\n",
		util.FormatCount(s.Likes), util.FormatCount(s.Coins), util.FormatCount(s.Favorites)))
	sb.WriteString(fmt.Sprintf("   Comments: %s | Shares: %s | Danmaku: %s\n",
		util.FormatCount(s.Comments), util.FormatCount(s.Shares), util.FormatCount(s.Danmaku)))
}

type countLine struct {
	label string
	a, b  int64
}

func countLines(a, b domain.VideoStats) []countLine {
	return []countLine{
		{"Views", a.Views, b.Views},
		{"Likes", a.Likes, b.Likes},
		{"Coins", a.Coins, b.Coins},
		{"Favorites", a.Favorites, b.Favorites},
		{"Comments", a.Comments, b.Comments},
		{"Shares", a.Shares, b.Shares},
		{"Danmaku", a.Danmaku, b.Danmaku},
	}
}

type ratioEntry struct {
	label string
	value float64
}

func ratioLines(r domain.RatioSet) []ratioEntry {
	return []ratioEntry{
		{"Like rate", r.LikeRate},
		{"Coin rate", r.CoinRate},
		{"Favorite rate", r.FavoriteRate},
		{"Comment rate", r.CommentRate},
		{"Share rate", r.ShareRate},
		{"Danmaku rate", r.DanmakuRate},
	}
}

// diffLine reports the absolute gap between both counters with the gap
// as a percentage of the trailing side, matching the terminal layout of
// the comparison report.
func diffLine(label string, a, b int64) string {
	diff := a - b
	switch {
	case diff > 0:
		pct := ""
		if b > 0 {
			pct = fmt.Sprintf(" (+%.1f%%)", float64(diff)/float64(b)*100)
		}
		return fmt.Sprintf("%s: video 1 leads by %s%s", label, util.FormatCount(diff), pct)
	case diff < 0:
		pct := ""
		if a > 0 {
			pct = fmt.Sprintf(" (+%.1f%%)", float64(-diff)/float64(a)*100)
		}
		return fmt.Sprintf("%s: video 2 leads by %s%s", label, util.FormatCount(-diff), pct)
	default:
		return fmt.Sprintf("%s: even", label)
	}
}

func ratioLine(label string, a, b float64) string {
	verdict := "even"
	if a > b {
		verdict = "video 1 higher"
	} else if a < b {
		verdict = "video 2 higher"
	}
	return fmt.Sprintf("%s: %s vs %s (%s)", label, formatRatio(a), formatRatio(b), verdict)
}

func formatRatio(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func stabilityLabel(level domain.StabilityLevel) string {
	switch level {
	case domain.StabilityExcellent:
		return "excellent 🏆"
	case domain.StabilityGood:
		return "good ⭐"
	case domain.StabilityFair:
		return "fair 📊"
	default:
		return "needs work 💡"
	}
}

func stabilityAdvice(level domain.StabilityLevel) string {
	switch level {
	case domain.StabilityExcellent:
		return "Very steady operation. Keep the current rhythm and quality bar."
	case domain.StabilityGood:
		return "Mostly steady. Tightening the publish schedule would help."
	case domain.StabilityFair:
		return "Reasonably steady with room to grow. Aim for more even quality."
	default:
		return "Output swings a lot. Settling on a fixed update rhythm comes first."
	}
}

func stageLabel(stage domain.GrowthStage) string {
	switch stage {
	case domain.StageExplorer:
		return "explorer (finding an audience)"
	case domain.StageRising:
		return "rising (growing steadily)"
	default:
		return "established (stable reach)"
	}
}
