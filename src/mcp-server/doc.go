// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the certificate expiry monitor over the Model
// Context Protocol ([MCP]) on stdio.
//
// Tools:
//   - check_domains: check a list of domains and return statuses and the report
//   - aggregate_statuses: reduce a status batch to a single report
//   - inspect_domain_chain: fetch one domain's chain and describe every certificate
//
// Resources:
//   - config://template: the effective configuration as JSON
//   - info://version: server name, version and tools
//   - docs://certificate-rules: the validity rules as markdown
//
// Servers are assembled with [ServerBuilder]; [Run] wires the production
// dependencies and serves until the context is cancelled.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
