package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Output.ChartDir = t.TempDir()
	cfg.Output.ExportDir = t.TempDir()
	return cfg
}

func TestBuildAssemblesAllCommands(t *testing.T) {
	var out bytes.Buffer
	container, err := Build(testConfig(t), zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	names := make([]string, 0)
	for _, cmd := range container.Registry.Commands() {
		names = append(names, cmd.Name())
	}
	want := []string{"compare", "video", "stability", "interaction", "comprehensive", "export", "perf", "help"}
	if len(names) != len(want) {
		t.Fatalf("registered commands = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("command[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBuildRejectsNilInputs(t *testing.T) {
	var out bytes.Buffer
	if _, err := Build(nil, zap.NewNop(), &out); err == nil {
		t.Error("nil config must be rejected")
	}
	if _, err := Build(testConfig(t), nil, &out); err == nil {
		t.Error("nil logger must be rejected")
	}
}

func TestShellRunsHelpAndExits(t *testing.T) {
	var out bytes.Buffer
	container, err := Build(testConfig(t), zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	shell, err := container.NewShell(strings.NewReader("help\nexit\n"))
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Bilibili video analyzer", "Available commands", "compare", "Bye!"} {
		if !strings.Contains(output, want) {
			t.Errorf("session output missing %q:\n%s", want, output)
		}
	}
}

func TestShellReportsUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	container, err := Build(testConfig(t), zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	shell, err := container.NewShell(strings.NewReader("frobnicate\nexit\n"))
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(out.String(), "Unknown command") {
		t.Errorf("missing unknown-command notice:\n%s", out.String())
	}
}

func TestShellExitsOnEOF(t *testing.T) {
	var out bytes.Buffer
	container, err := Build(testConfig(t), zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	shell, err := container.NewShell(strings.NewReader(""))
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("EOF should end the session cleanly, got %v", err)
	}
}

func TestShellRunOnceDispatches(t *testing.T) {
	var out bytes.Buffer
	container, err := Build(testConfig(t), zap.NewNop(), &out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	shell, err := container.NewShell(strings.NewReader(""))
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := shell.RunOnce(context.Background(), "perf", nil); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !strings.Contains(out.String(), "No performance data") {
		t.Errorf("perf report not printed:\n%s", out.String())
	}
}
