// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
	mcpserver "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/mcp-server"
	verpkg "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	log := logger.NewJSONLogger(os.Stderr, "mcp-server", false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx, version, log); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
