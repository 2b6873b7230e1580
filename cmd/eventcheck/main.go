package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/eventcheck/internal/cli"
	"github.com/usestring/eventcheck/internal/config"
	"github.com/usestring/eventcheck/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - EVENTCHECK_HTTP_TIMEOUT_MS: remote fetch timeout
	// (see internal/config for all options)
	cfg := config.Load()

	cleanup, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer cleanup()

	root := cli.NewRootCmd(cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		// Findings have already been rendered; anything else deserves a
		// message of its own.
		if !errors.Is(err, cli.ErrValidation) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
