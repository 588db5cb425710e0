// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/mcp-server/templates"
)

// configResourceHandler serves cfg as indented JSON.
func configResourceHandler(cfg *config.Config) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonData, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config template: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}

// versionResourceHandler serves the server metadata.
func versionResourceHandler(version string, tools []ToolDefinition) server.ResourceHandlerFunc {
	type toolMeta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	info := struct {
		Name    string     `json:"name"`
		Version string     `json:"version"`
		Tools   []toolMeta `json:"tools"`
	}{
		Name:    serverName,
		Version: version,
		Tools:   make([]toolMeta, 0, len(tools)),
	}
	for _, t := range tools {
		info.Tools = append(info.Tools, toolMeta{Name: t.Tool.Name, Description: t.Tool.Description})
	}

	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonData, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal version info: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}

// handleCertificateRulesResource serves the embedded validity rules.
func handleCertificateRulesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile(templates.CertificateRules)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate rules: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}
