// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/cli"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
	verpkg "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// exitCode maps a CLI result to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrIssuesFound):
		return 2
	default:
		return 1
	}
}

func main() {
	// Create CLI logger
	log := logger.NewCLILogger()

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling using signal.NotifyContext for cleaner cancellation
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to signal completion
	done := make(chan error, 1)

	// Run the CLI in a separate goroutine
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	// Wait for either completion or context cancellation
	select {
	case err := <-done:
		code := exitCode(err)
		if code == 1 {
			log.Printf("CLI execution failed: %v", err)
		}
		if code != 0 {
			os.Exit(code)
		}
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give the CLI a moment to clean up
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(130) // Standard exit code for SIGINT
	}
}
