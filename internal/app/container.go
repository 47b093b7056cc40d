package app

import (
	"fmt"
	"io"

	"github.com/kapu/bilibili-analyzer-go/internal/analyzer"
	"github.com/kapu/bilibili-analyzer-go/internal/command"
	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/perf"
	"github.com/kapu/bilibili-analyzer-go/internal/report"
	"github.com/kapu/bilibili-analyzer-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles the assembled services and the command registry for
// constructing runtime components like the interactive shell.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *command.Registry

	deps *command.Dependencies
}

// NewShell instantiates a shell using the pre-built dependency graph.
func (c *Container) NewShell(in io.Reader) (*Shell, error) {
	if c == nil || c.deps == nil {
		return nil, fmt.Errorf("shell dependencies not initialized")
	}
	return NewShell(c.Registry, c.deps, in), nil
}

// Build assembles all services and returns a container capable of
// creating fully-wired shells. Everything stateful (HTTP client,
// benchmark data, performance monitor) is initialized here so the shell
// stays focused on dispatch.
func Build(cfg *config.Config, logger *zap.Logger, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	client := service.NewBilibiliClient(cfg.Bilibili, logger)
	scraper := service.NewPageScraper(cfg.Bilibili, logger)
	fetcher := service.NewFetcher(client, scraper, *cfg, logger)

	benchmarks := analyzer.LoadBenchmarks(cfg.Output.BenchmarkFile)
	stability := analyzer.NewStabilityAnalyzer()
	interaction := analyzer.NewInteractionAnalyzer(benchmarks)

	exporter := service.NewExporter(cfg.Output.ExportDir, logger)
	formatter := report.NewFormatter(interaction)
	charts := report.NewChartRenderer(cfg.Output.ChartDir, logger)
	monitor := perf.NewMonitor()

	deps := &command.Dependencies{
		Fetcher:     fetcher,
		Client:      client,
		Stability:   stability,
		Interaction: interaction,
		Exporter:    exporter,
		Formatter:   formatter,
		Charts:      charts,
		Monitor:     monitor,
		Analyze:     cfg.Analyze,
		Out:         out,
		Logger:      logger,
	}

	registry := command.NewRegistry()
	registry.Register(command.NewCompareCommand(deps))
	registry.Register(command.NewVideoCommand(deps))
	registry.Register(command.NewStabilityCommand(deps))
	registry.Register(command.NewInteractionCommand(deps))
	registry.Register(command.NewComprehensiveCommand(deps))
	registry.Register(command.NewExportCommand(deps))
	registry.Register(command.NewPerfCommand(deps))
	registry.Register(command.NewHelpCommand(deps, registry))

	logger.Info("Application services assembled",
		zap.Int("commands", registry.Count()),
		zap.String("api_base", cfg.Bilibili.BaseURL),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		deps:     deps,
	}, nil
}
