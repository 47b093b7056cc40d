package command

import (
	"context"
	"fmt"
)

// HelpCommand lists the registered commands in registration order.
type HelpCommand struct {
	deps     *Dependencies
	registry *Registry
}

func NewHelpCommand(deps *Dependencies, registry *Registry) *HelpCommand {
	return &HelpCommand{deps: deps, registry: registry}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Show the available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	c.deps.println("📋 Available commands:")
	for _, cmd := range c.registry.Commands() {
		c.deps.println(fmt.Sprintf("   %-14s %s", cmd.Name(), cmd.Description()))
	}
	c.deps.println("   exit           Leave the interactive session")
	return nil
}
