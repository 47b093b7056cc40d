package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kapu/bilibili-analyzer-go/internal/command"
	apperrors "github.com/kapu/bilibili-analyzer-go/pkg/errors"
	"go.uber.org/zap"
)

// Shell drives the interactive session: it prints the menu, reads one
// command per line, and dispatches it through the registry. It also
// backs the prompt the commands use for missing arguments.
type Shell struct {
	registry *command.Registry
	deps     *command.Dependencies
	scanner  *bufio.Scanner
}

func NewShell(registry *command.Registry, deps *command.Dependencies, in io.Reader) *Shell {
	shell := &Shell{
		registry: registry,
		deps:     deps,
		scanner:  bufio.NewScanner(in),
	}
	deps.Prompt = shell.prompt
	return shell
}

// RunOnce dispatches a single command and returns, for non-interactive
// invocations.
func (s *Shell) RunOnce(ctx context.Context, name string, args []string) error {
	return s.registry.Execute(ctx, name, args)
}

// Run loops on the menu until the user exits or the context is
// canceled. Command failures are reported and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	s.printMenu()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.prompt("command")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if name == "exit" || name == "quit" {
			fmt.Fprintln(s.deps.Out, "👋 Bye!")
			return nil
		}

		if err := s.registry.Execute(ctx, name, fields[1:]); err != nil {
			s.report(name, err)
		}
	}
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprintf(s.deps.Out, "%s > ", label)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.deps.Out, "📺 Bilibili video analyzer")
	fmt.Fprintln(s.deps.Out, "══════════════════════════════════════")
	for _, cmd := range s.registry.Commands() {
		fmt.Fprintf(s.deps.Out, "   %-14s %s\n", cmd.Name(), cmd.Description())
	}
	fmt.Fprintln(s.deps.Out, "   exit           Leave the interactive session")
}

func (s *Shell) report(name string, err error) {
	if errors.Is(err, command.ErrUnknownCommand) {
		fmt.Fprintf(s.deps.Out, "❓ Unknown command %q, try \"help\".\n", name)
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(s.deps.Out, "❌ %s\n", appErr.Message)
	} else {
		fmt.Fprintf(s.deps.Out, "❌ %v\n", err)
	}
	s.deps.Logger.Error("Command failed", zap.String("command", name), zap.Error(err))
}
