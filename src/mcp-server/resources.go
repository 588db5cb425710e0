// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
)

// createResources creates the static resources served alongside the tools.
//
// Parameters:
//   - cfg: Effective configuration exposed by config://template
//   - version: Server version exposed by info://version
//   - tools: Registered tools listed by info://version
func createResources(cfg *config.Config, version string, tools []ToolDefinition) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				"config://template",
				"Configuration Template",
				mcp.WithResourceDescription("Effective monitor configuration, usable as a config file"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: configResourceHandler(cfg),
		},
		{
			Resource: mcp.NewResource(
				"info://version",
				"Version Information",
				mcp.WithResourceDescription("Server name, version and available tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: versionResourceHandler(version, tools),
		},
		{
			Resource: mcp.NewResource(
				"docs://certificate-rules",
				"Certificate Validity Rules",
				mcp.WithResourceDescription("How certificates and chains are judged valid, expiring or failed"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleCertificateRulesResource,
		},
	}
}
