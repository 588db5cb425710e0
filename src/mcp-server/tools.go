// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool roles referenced by the instructions template.
const (
	roleDomainChecker  = "domainChecker"
	roleAggregator     = "aggregator"
	roleChainInspector = "chainInspector"
)

// createTools creates the MCP tool definitions bound to h.
//
// The function defines the following tools:
//   - check_domains: Checks the chains of many domains concurrently
//   - aggregate_statuses: Reduces a status batch to a single report
//   - inspect_domain_chain: Describes every certificate served by one domain
func createTools(h *toolHandlers) []ToolDefinition {
	days := h.config.Defaults.MinRemainingDays

	return []ToolDefinition{
		{
			Tool: mcp.NewTool("check_domains",
				mcp.WithDescription("Check that every certificate in the TLS chain of each domain stays valid for a minimum number of days"),
				mcp.WithString("domains",
					mcp.Required(),
					mcp.Description("Domains separated by newlines or commas; blank entries and # comments are ignored"),
				),
				mcp.WithNumber("min_remaining_days",
					mcp.Description(fmt.Sprintf("Minimum remaining days of validity (default: %d)", days)),
					mcp.DefaultNumber(float64(days)),
				),
			),
			Handler: h.handleCheckDomains,
			Role:    roleDomainChecker,
		},
		{
			Tool: mcp.NewTool("aggregate_statuses",
				mcp.WithDescription("Aggregate a JSON status batch into a single report"),
				mcp.WithString("statuses",
					mcp.Required(),
					mcp.Description(`JSON array of {"domain","valid","error"} objects, or an object with a "statuses" array`),
				),
			),
			Handler: h.handleAggregateStatuses,
			Role:    roleAggregator,
		},
		{
			Tool: mcp.NewTool("inspect_domain_chain",
				mcp.WithDescription("Fetch the TLS chain of one domain and describe the validity of every certificate"),
				mcp.WithString("domain",
					mcp.Required(),
					mcp.Description("Domain to connect to"),
				),
				mcp.WithNumber("min_remaining_days",
					mcp.Description(fmt.Sprintf("Minimum remaining days of validity (default: %d)", days)),
					mcp.DefaultNumber(float64(days)),
				),
				mcp.WithBoolean("include_pem",
					mcp.Description("Append the chain in PEM format (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: h.handleInspectDomainChain,
			Role:    roleChainInspector,
		},
	}
}
