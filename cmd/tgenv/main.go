package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rinrailin/tgenv/internal/cli"
	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/version"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Exit codes: 1 for any fatal condition, 2 when min-required resolution
// reports the constraint cannot be satisfied.
const (
	exitFailure                = 1
	exitMinRequiredUnsupported = 2
)

func main() {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tgenv: %v\n", err)
		os.Exit(exitFailure)
	}

	log := config.NewLogger(cfg.Debug)

	// Cancels in-flight downloads and subprocesses on SIGINT/SIGTERM so the
	// temporary download scope is removed on interrupted runs too.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(Version, cfg, log)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Msg(err.Error())
		if errors.Is(err, version.ErrMinRequiredUnsupported) {
			os.Exit(exitMinRequiredUnsupported)
		}
		os.Exit(exitFailure)
	}
}
