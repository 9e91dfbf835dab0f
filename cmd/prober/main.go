package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/placeholder-client/internal/app"
	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	once := pflag.Bool("once", false, "run the check suite a single time and exit")
	pflag.Parse()

	code, err := run(*once)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prober failed: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(once bool) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return 1, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("prober starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := app.NewProber(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize prober", "error", err)
		return 1, err
	}

	if once {
		sum, err := p.RunOnce(ctx)
		if err != nil {
			return 1, fmt.Errorf("probe run: %w", err)
		}
		if sum.Failed > 0 {
			return 2, nil
		}
		return 0, nil
	}

	if err := p.Run(ctx); err != nil {
		return 1, fmt.Errorf("prober run: %w", err)
	}
	return 0, nil
}
