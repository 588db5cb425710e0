// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates embeds the markdown served by the MCP server: the
// instruction template rendered at startup and the certificate rules
// documentation resource.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/mcp-server/templates"
//
//	content, err := templates.MagicEmbed.ReadFile(templates.CertificateRules)
//	if err != nil {
//		return fmt.Errorf("failed to read certificate rules: %w", err)
//	}
package templates
