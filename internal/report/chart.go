package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
	"go.uber.org/zap"
)

var countMetricNames = []string{"Likes", "Coins", "Favorites", "Comments", "Shares", "Danmaku"}

var ratioMetricNames = []string{"Like rate", "Coin rate", "Favorite rate", "Comment rate", "Share rate", "Danmaku rate"}

// ChartRenderer writes the comparison charts as a self-contained HTML
// page: one grouped bar chart for raw counts, one for per-view ratios.
type ChartRenderer struct {
	dir    string
	logger *zap.Logger
}

func NewChartRenderer(dir string, logger *zap.Logger) *ChartRenderer {
	return &ChartRenderer{dir: dir, logger: logger}
}

// Render draws one series per row and returns the written file path.
// Works for a single video as well as a comparison; series order follows
// row order.
func (c *ChartRenderer) Render(details []*domain.VideoDetail, rows []domain.ComparisonRow) (string, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}

	countBar := charts.NewBar()
	countBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Interaction counts",
			Subtitle: viewsSubtitle(rows),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	countBar.SetXAxis(countMetricNames)

	ratioBar := charts.NewBar()
	ratioBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Per-view ratios",
			Subtitle: "interaction count / view count",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	ratioBar.SetXAxis(ratioMetricNames)

	for i, row := range rows {
		name := seriesName(details, i)
		countBar.AddSeries(name, countSeries(row.Stats))
		ratioBar.AddSeries(name, ratioSeries(row.Ratios))
	}

	page := components.NewPage()
	page.PageTitle = "Video statistics"
	page.AddCharts(countBar, ratioBar)

	path := filepath.Join(c.dir, chartFileName(rows))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return "", err
	}

	c.logger.Info("Chart page written",
		zap.String("path", path),
		zap.Int("series", len(rows)),
	)
	return path, nil
}

func seriesName(details []*domain.VideoDetail, i int) string {
	if i < len(details) && details[i].Title != "" {
		return util.TruncateString(details[i].Title, maxTitleRunes)
	}
	if i < len(details) {
		return details[i].Bvid
	}
	return fmt.Sprintf("video %d", i+1)
}

func countSeries(s domain.VideoStats) []opts.BarData {
	values := []int64{s.Likes, s.Coins, s.Favorites, s.Comments, s.Shares, s.Danmaku}
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func ratioSeries(r domain.RatioSet) []opts.BarData {
	values := []float64{r.LikeRate, r.CoinRate, r.FavoriteRate, r.CommentRate, r.ShareRate, r.DanmakuRate}
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func viewsSubtitle(rows []domain.ComparisonRow) string {
	switch len(rows) {
	case 1:
		return fmt.Sprintf("views: %s", util.FormatCount(rows[0].Stats.Views))
	case 2:
		return fmt.Sprintf("views: %s vs %s",
			util.FormatCount(rows[0].Stats.Views), util.FormatCount(rows[1].Stats.Views))
	default:
		return ""
	}
}

func chartFileName(rows []domain.ComparisonRow) string {
	stamp := time.Now().Format("20060102-150405")
	if len(rows) == 1 {
		return fmt.Sprintf("%s-%s.html", rows[0].Stats.Bvid, stamp)
	}
	return fmt.Sprintf("compare-%s.html", stamp)
}
