package command

import (
	"context"

	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
	"github.com/kapu/bilibili-analyzer-go/pkg/errors"
)

type InteractionCommand struct {
	deps *Dependencies
}

func NewInteractionCommand(deps *Dependencies) *InteractionCommand {
	return &InteractionCommand{deps: deps}
}

func (c *InteractionCommand) Name() string {
	return "interaction"
}

func (c *InteractionCommand) Description() string {
	return "Grade a creator's engagement rates against reference benchmarks"
}

func (c *InteractionCommand) Execute(ctx context.Context, args []string) error {
	mid, err := c.deps.readMid(args, 0, "Creator id (mid)")
	if err != nil {
		return err
	}

	c.deps.printf("🔄 Resolving creator %d...\n", mid)
	user, err := c.deps.fetchCreator(ctx, mid, c.deps.Analyze.InteractionVideoCount)
	if err != nil {
		return err
	}

	done := c.deps.Monitor.Track("analyze_interaction", perf.CategoryCompute)
	metrics := c.deps.Interaction.Analyze(service.StatsOf(user.details))
	done(metrics != nil)
	if metrics == nil {
		return errors.NewServiceError("no videos to analyze", "analyzer", "interaction", nil)
	}

	c.deps.println(c.deps.Formatter.FormatInteraction(user.info.Name, metrics))
	return nil
}
