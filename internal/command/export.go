package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
)

// ExportCommand writes a creator snapshot, including both analysis
// results and the raw video details, to a JSON file.
type ExportCommand struct {
	deps *Dependencies
}

func NewExportCommand(deps *Dependencies) *ExportCommand {
	return &ExportCommand{deps: deps}
}

func (c *ExportCommand) Name() string {
	return "export"
}

func (c *ExportCommand) Description() string {
	return "Export a creator snapshot to a JSON file"
}

func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	mid, err := c.deps.readMid(args, 0, "Creator id (mid)")
	if err != nil {
		return err
	}

	c.deps.printf("🔄 Resolving creator %d...\n", mid)
	user, err := c.deps.fetchCreator(ctx, mid, constants.AnalyzeConfig.ComprehensiveVideoCount)
	if err != nil {
		return err
	}

	stats := service.StatsOf(user.details)

	done := c.deps.Monitor.Track("evaluate_stability", perf.CategoryCompute)
	stability := c.deps.Stability.Evaluate(service.PubDatesOf(user.details), stats)
	done(true)

	done = c.deps.Monitor.Track("analyze_interaction", perf.CategoryCompute)
	metrics := c.deps.Interaction.Analyze(stats)
	done(metrics != nil)

	snapshot := c.deps.Exporter.NewSnapshot(user.info, user.details, &stability, metrics)

	done = c.deps.Monitor.Track("write_snapshot", perf.CategoryFile)
	path, err := c.deps.Exporter.Export(snapshot)
	done(err == nil)
	if err != nil {
		return err
	}

	c.deps.printf("💾 Snapshot for %s written to %s\n", user.info.Name, path)
	return nil
}
