package command

import "context"

type PerfCommand struct {
	deps *Dependencies
}

func NewPerfCommand(deps *Dependencies) *PerfCommand {
	return &PerfCommand{deps: deps}
}

func (c *PerfCommand) Name() string {
	return "perf"
}

func (c *PerfCommand) Description() string {
	return "Show timings of this session's operations"
}

func (c *PerfCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "clear" {
		c.deps.Monitor.Clear()
		c.deps.println("🧹 Performance data cleared.")
		return nil
	}
	c.deps.println(c.deps.Monitor.Report())
	return nil
}
