// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// serverName is announced to MCP clients during initialization.
const serverName = "TLS Certificate Expiry Monitor"

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolDefinition holds a tool definition and its handler.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: Stable key used by the instructions template to refer to the tool
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Defaults for policy, concurrency and timeouts
//   - Version: Server version string
//   - Fetcher: Transport used by the network tools
//   - Logger: Optional logger; stdout carries the protocol so it must not write there
//   - Tools: Extra tool definitions
//   - Resources: Extra resources
//   - Instructions: Text returned to clients on initialization
//
// This struct is used internally by ServerBuilder and should not be instantiated directly.
type ServerDependencies struct {
	Config       *config.Config
	Version      string
	Fetcher      monitor.ChainFetcher
	Logger       logger.Logger
	Tools        []ToolDefinition
	Resources    []server.ServerResource
	Instructions string

	defaultTools     bool
	defaultResources bool
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the configuration. A nil config selects [config.Default].
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithVersion sets the server version string.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithFetcher overrides the chain transport used by the default tools.
// Without it a [x509chain.Fetcher] is built from the configuration.
func (b *ServerBuilder) WithFetcher(f monitor.ChainFetcher) *ServerBuilder {
	b.deps.Fetcher = f
	return b
}

// WithLogger sets the logger handed to the domain checker.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithTools adds tool definitions.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithDefaultTools registers check_domains, aggregate_statuses and
// inspect_domain_chain, bound to the builder's config and fetcher.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.deps.defaultTools = true
	return b
}

// WithResources adds resources.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithDefaultResources registers the config, version and documentation resources.
func (b *ServerBuilder) WithDefaultResources() *ServerBuilder {
	b.deps.defaultResources = true
	return b
}

// WithInstructions sets the instructions returned on initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Build creates the MCP server with all configured dependencies.
//
// Returns:
//   - *server.MCPServer: The configured server
//   - error: Reserved for dependency validation; currently always nil
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	cfg := b.deps.Config
	if cfg == nil {
		cfg = config.Default()
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}

	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	tools := b.deps.Tools
	if b.deps.defaultTools {
		tools = append(tools, createTools(b.toolHandlers(cfg))...)
	}
	for _, tool := range tools {
		s.AddTool(tool.Tool, tool.Handler)
	}

	resources := b.deps.Resources
	if b.deps.defaultResources {
		resources = append(resources, createResources(cfg, b.deps.Version, tools)...)
	}
	for _, resource := range resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}

func (b *ServerBuilder) toolHandlers(cfg *config.Config) *toolHandlers {
	fetcher := b.deps.Fetcher
	if fetcher == nil {
		fetcher = newFetcher(cfg)
	}
	return &toolHandlers{config: cfg, fetcher: fetcher, log: b.deps.Logger}
}

func newFetcher(cfg *config.Config) *x509chain.Fetcher {
	f := x509chain.NewFetcher(cfg.TimeoutDuration())
	f.Port = cfg.Defaults.Port
	return f
}
