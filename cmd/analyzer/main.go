package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapu/bilibili-analyzer-go/internal/app"
	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Bilibili analyzer starting...",
		zap.String("version", "1.0.0-go"),
		zap.String("log_level", cfg.Logging.Level),
	)

	container, err := app.Build(cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}

	shell, err := container.NewShell(os.Stdin)
	if err != nil {
		logger.Error("Failed to initialize shell", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// With arguments run one command and exit; without, drop into the
	// interactive menu.
	if len(os.Args) > 1 {
		if err := shell.RunOnce(ctx, os.Args[1], os.Args[2:]); err != nil {
			logger.Error("Command failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Session ended with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Shutdown complete")
}
