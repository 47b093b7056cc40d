package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
)

// ComprehensiveCommand runs the stability and interaction analyses over
// a single upload fetch so the creator's pages are only walked once.
type ComprehensiveCommand struct {
	deps *Dependencies
}

func NewComprehensiveCommand(deps *Dependencies) *ComprehensiveCommand {
	return &ComprehensiveCommand{deps: deps}
}

func (c *ComprehensiveCommand) Name() string {
	return "comprehensive"
}

func (c *ComprehensiveCommand) Description() string {
	return "Run the stability and interaction reports for a creator"
}

func (c *ComprehensiveCommand) Execute(ctx context.Context, args []string) error {
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

	c.deps.println(c.deps.Formatter.FormatStability(user.info.Name, stability))
	if metrics != nil {
		c.deps.println(c.deps.Formatter.FormatInteraction(user.info.Name, metrics))
	}
	return nil
}
