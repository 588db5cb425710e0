// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/mcp-server/templates"
)

// instructionData holds the data used to populate the MCP server instructions template.
type instructionData struct {
	Tools     []toolInfo
	ToolRoles map[string]string // Maps tool roles to tool names for template use
}

// toolInfo represents information about an MCP tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

// loadInstructions renders the embedded instructions template for tools.
//
// Returns:
//   - string: The rendered instruction text
//   - error: If the embedded file cannot be read or template parsing fails
func loadInstructions(tools []ToolDefinition) (string, error) {
	templateBytes, err := templates.MagicEmbed.ReadFile(templates.Instructions)
	if err != nil {
		return "", fmt.Errorf("failed to load MCP server instructions template: %w", err)
	}

	data := instructionData{ToolRoles: make(map[string]string, len(tools))}
	for _, tool := range tools {
		data.Tools = append(data.Tools, toolInfo{
			Name:        tool.Tool.Name,
			Description: tool.Tool.Description,
		})
		if tool.Role != "" {
			data.ToolRoles[tool.Role] = tool.Tool.Name
		}
	}

	tmpl, err := template.New("instructions").Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}

	return buf.String(), nil
}
