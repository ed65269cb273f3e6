package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/deppfellow/go-invoicing/internal/cli"
	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Observability)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cli.NewRuntime(cfg, &log)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
