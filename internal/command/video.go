package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/analyzer"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"go.uber.org/zap"
)

type VideoCommand struct {
	deps *Dependencies
}

func NewVideoCommand(deps *Dependencies) *VideoCommand {
	return &VideoCommand{deps: deps}
}

func (c *VideoCommand) Name() string {
	return "video"
}

func (c *VideoCommand) Description() string {
	return "Analyze the statistics and ratios of one video"
}

func (c *VideoCommand) Execute(ctx context.Context, args []string) error {
	bvid, err := c.deps.readBvid(args, 0, "BV id", true)
	if err != nil {
		return err
	}
	return analyzeSingleVideo(ctx, c.deps, bvid)
}

// analyzeSingleVideo is shared with the compare command, which degrades
// to a single-video run when the second id is left empty.
func analyzeSingleVideo(ctx context.Context, deps *Dependencies, bvid string) error {
	deps.printf("🔄 Fetching %s...\n", bvid)

	done := deps.Monitor.Track("get_video_info", perf.CategoryNetwork)
	detail, err := deps.Fetcher.FetchVideo(ctx, bvid)
	done(err == nil)
	if err != nil {
		return err
	}

	doneCompute := deps.Monitor.Track("calculate_ratios", perf.CategoryCompute)
	rows := analyzer.Aggregate([]domain.VideoStats{detail.Stats})
	doneCompute(true)

	deps.println(deps.Formatter.FormatVideo(detail, rows[0]))

	doneRender := deps.Monitor.Track("render_video_chart", perf.CategoryRender)
	path, err := deps.Charts.Render([]*domain.VideoDetail{detail}, rows)
	doneRender(err == nil)
	if err != nil {
		deps.Logger.Warn("Chart rendering failed", zap.Error(err))
		return nil
	}
	deps.printf("📊 Chart written to %s\n", path)
	return nil
}
