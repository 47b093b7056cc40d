package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/analyzer"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
	"go.uber.org/zap"
)

type CompareCommand struct {
	deps *Dependencies
}

func NewCompareCommand(deps *Dependencies) *CompareCommand {
	return &CompareCommand{deps: deps}
}

func (c *CompareCommand) Name() string {
	return "compare"
}

func (c *CompareCommand) Description() string {
	return "Compare the statistics and ratios of two videos"
}

func (c *CompareCommand) Execute(ctx context.Context, args []string) error {
	first, err := c.deps.readBvid(args, 0, "First BV id", true)
	if err != nil {
		return err
	}
	second, err := c.deps.readBvid(args, 1, "Second BV id (empty for single-video analysis)", false)
	if err != nil {
		return err
	}
	if second == "" {
		return analyzeSingleVideo(ctx, c.deps, first)
	}

	c.deps.printf("🔄 Fetching %s and %s...\n", first, second)

	done := c.deps.Monitor.Track("get_video_pair", perf.CategoryNetwork)
	details, err := c.deps.Fetcher.FetchVideos(ctx, []string{first, second})
	done(err == nil)
	if err != nil {
		return err
	}

	doneCompute := c.deps.Monitor.Track("calculate_ratios", perf.CategoryCompute)
	rows := analyzer.Aggregate(service.StatsOf(details))
	doneCompute(true)

	c.deps.println(c.deps.Formatter.FormatComparison(details, rows))

	doneRender := c.deps.Monitor.Track("render_comparison_chart", perf.CategoryRender)
	path, err := c.deps.Charts.Render(details, rows)
	doneRender(err == nil)
	if err != nil {
		c.deps.Logger.Warn("Chart rendering failed", zap.Error(err))
		return nil
	}
	c.deps.printf("📊 Chart written to %s\n", path)
	return nil
}
