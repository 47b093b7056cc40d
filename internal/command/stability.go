package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
)

type StabilityCommand struct {
	deps *Dependencies
}

func NewStabilityCommand(deps *Dependencies) *StabilityCommand {
	return &StabilityCommand{deps: deps}
}

func (c *StabilityCommand) Name() string {
	return "stability"
}

func (c *StabilityCommand) Description() string {
	return "Score a creator's publish cadence and quality evenness"
}

func (c *StabilityCommand) Execute(ctx context.Context, args []string) error {
	mid, err := c.deps.readMid(args, 0, "Creator id (mid)")
	if err != nil {
		return err
	}

	c.deps.printf("🔄 Resolving creator %d...\n", mid)
	user, err := c.deps.fetchCreator(ctx, mid, c.deps.Analyze.StabilityVideoCount)
	if err != nil {
		return err
	}

	done := c.deps.Monitor.Track("evaluate_stability", perf.CategoryCompute)
	result := c.deps.Stability.Evaluate(service.PubDatesOf(user.details), service.StatsOf(user.details))
	done(true)

	c.deps.println(c.deps.Formatter.FormatStability(user.info.Name, result))
	return nil
}
