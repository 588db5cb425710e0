// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// Run starts the MCP server on stdio and serves until ctx is cancelled.
//
// Parameters:
//   - ctx: Context cancelled on interrupt
//   - version: Version string announced to clients
//   - log: Logger for lifecycle messages; must not write to stdout
//
// Returns:
//   - error: Configuration, build or transport error
//
// Configuration:
//   - Loads config from the CERT_MONITOR_CONFIG_FILE environment variable
//   - Falls back to default config if the variable is not set
func Run(ctx context.Context, version string, log logger.Logger) error {
	return serve(ctx, version, log, os.Stdin, os.Stdout)
}

func serve(ctx context.Context, version string, log logger.Logger, in io.Reader, out io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Render instructions from the same tool set the server registers.
	tools := createTools(NewServerBuilder().WithConfig(cfg).toolHandlers(cfg))
	instructions, err := loadInstructions(tools)
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithLogger(log).
		WithDefaultTools().
		WithDefaultResources().
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	if log != nil {
		log.Printf("Serving %s %s on stdio", serverName, version)
	}

	if err := server.NewStdioServer(s).Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
