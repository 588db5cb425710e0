// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/testcert"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

func serverTools(defs []ToolDefinition) []server.ServerTool {
	tools := make([]server.ServerTool, 0, len(defs))
	for _, d := range defs {
		tools = append(tools, server.ServerTool{Tool: d.Tool, Handler: d.Handler})
	}
	return tools
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func TestMCPTools(t *testing.T) {
	tlsSrv := testcert.NewServer(t, testcert.ServerOptions{})

	cfg := config.Default()
	h := &toolHandlers{
		config:  cfg,
		fetcher: &x509chain.Fetcher{Port: tlsSrv.Port, Timeout: cfg.TimeoutDuration(), RootCAs: tlsSrv.Roots},
	}

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(serverTools(createTools(h))...)
	require.NoError(t, srv.Start(context.Background()))
	defer srv.Close()

	client := srv.Client()

	tests := []struct {
		name           string
		toolName       string
		args           map[string]any
		expectError    bool
		expectContains []string
		testFunc       func(t *testing.T, text string)
	}{
		{
			name:     "check_domains all valid",
			toolName: "check_domains",
			args:     map[string]any{"domains": "127.0.0.1, 127.0.0.1"},
			testFunc: func(t *testing.T, text string) {
				var out struct {
					Statuses []monitor.Status `json:"statuses"`
					Summary  monitor.Summary  `json:"summary"`
					Report   map[string]any   `json:"report"`
				}
				require.NoError(t, json.Unmarshal([]byte(text), &out))
				require.Len(t, out.Statuses, 2)
				for _, st := range out.Statuses {
					assert.True(t, st.Valid)
					assert.Empty(t, st.Error)
				}
				assert.Equal(t, 2, out.Summary.Valid)
				assert.Contains(t, out.Report, "Valid")
			},
		},
		{
			name:     "check_domains soft miss",
			toolName: "check_domains",
			args:     map[string]any{"domains": "127.0.0.1", "min_remaining_days": 400},
			expectContains: []string{
				`"state": "expiring_soon"`,
				`Found 1 issues.\nDomain 127.0.0.1 ()`,
			},
		},
		{
			name:           "check_domains network failure",
			toolName:       "check_domains",
			args:           map[string]any{"domains": "127.0.0.2"},
			expectContains: []string{`"valid": false`, "network error:"},
		},
		{
			name:           "check_domains only comments",
			toolName:       "check_domains",
			args:           map[string]any{"domains": "# nothing\n\n"},
			expectError:    true,
			expectContains: []string{"no domains given"},
		},
		{
			name:           "check_domains negative days",
			toolName:       "check_domains",
			args:           map[string]any{"domains": "127.0.0.1", "min_remaining_days": -1},
			expectError:    true,
			expectContains: []string{"must not be negative"},
		},
		{
			name:        "check_domains missing domains",
			toolName:    "check_domains",
			args:        map[string]any{},
			expectError: true,
		},
		{
			name:     "aggregate_statuses mixed",
			toolName: "aggregate_statuses",
			args: map[string]any{
				"statuses": `[{"domain":"ok.example","valid":true,"error":""},{"domain":"foobar","valid":false,"error":"oops"}]`,
			},
			expectContains: []string{`{"report":{"Invalid":"Found 1 issues.\nDomain foobar (oops)"}}`},
		},
		{
			name:           "aggregate_statuses empty",
			toolName:       "aggregate_statuses",
			args:           map[string]any{"statuses": `[]`},
			expectContains: []string{`{"report":{"Valid":null}}`},
		},
		{
			name:        "aggregate_statuses malformed",
			toolName:    "aggregate_statuses",
			args:        map[string]any{"statuses": `{"statuses":"nope"}`},
			expectError: true,
		},
		{
			name:     "inspect_domain_chain",
			toolName: "inspect_domain_chain",
			args:     map[string]any{"domain": "127.0.0.1"},
			expectContains: []string{
				"## Chain for 127.0.0.1",
				"Local Test Intermediate",
				"**Valid**",
			},
		},
		{
			name:     "inspect_domain_chain with pem",
			toolName: "inspect_domain_chain",
			args:     map[string]any{"domain": "127.0.0.1", "include_pem": true, "min_remaining_days": 400},
			expectContains: []string{
				"**Expiring soon**",
				"-----BEGIN CERTIFICATE-----",
			},
		},
		{
			name:           "inspect_domain_chain unreachable",
			toolName:       "inspect_domain_chain",
			args:           map[string]any{"domain": "127.0.0.2"},
			expectError:    true,
			expectContains: []string{"Domain 127.0.0.2 (network error:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.CallTool(context.Background(), mcp.CallToolRequest{
				Params: mcp.CallToolParams{Name: tt.toolName, Arguments: tt.args},
			})
			require.NoError(t, err)
			require.NotNil(t, result)

			text := resultText(t, result)
			assert.Equal(t, tt.expectError, result.IsError, text)
			for _, want := range tt.expectContains {
				assert.Contains(t, text, want)
			}
			if tt.testFunc != nil {
				tt.testFunc(t, text)
			}
		})
	}
}

func TestResourceHandlers(t *testing.T) {
	cfg := config.Default()
	tools := createTools(&toolHandlers{config: cfg})

	srv := mcptest.NewUnstartedServer(t)
	srv.AddResources(createResources(cfg, "1.3.3.7", tools)...)
	require.NoError(t, srv.Start(context.Background()))
	defer srv.Close()

	client := srv.Client()

	tests := []struct {
		name           string
		uri            string
		expectError    bool
		expectContains []string
		expectMIMEType string
	}{
		{
			name:           "read config template resource",
			uri:            "config://template",
			expectContains: []string{`"minRemainingDays": 10`, `"timeoutSeconds": 10`},
			expectMIMEType: "application/json",
		},
		{
			name:           "read version info resource",
			uri:            "info://version",
			expectContains: []string{`"version": "1.3.3.7"`, `"check_domains"`, `"inspect_domain_chain"`},
			expectMIMEType: "application/json",
		},
		{
			name:           "read certificate rules resource",
			uri:            "docs://certificate-rules",
			expectContains: []string{"# Certificate Validity Rules", "PKCS #7"},
			expectMIMEType: "text/markdown",
		},
		{
			name:        "read nonexistent resource",
			uri:         "nonexistent://resource",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, result.Contents)

			content, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok, "expected TextResourceContents, got %T", result.Contents[0])
			assert.Equal(t, tt.expectMIMEType, content.MIMEType)
			for _, want := range tt.expectContains {
				assert.Contains(t, content.Text, want)
			}
		})
	}
}

func TestLoadInstructions(t *testing.T) {
	tools := createTools(&toolHandlers{config: config.Default()})

	instructions, err := loadInstructions(tools)
	require.NoError(t, err)

	for _, tool := range tools {
		assert.Contains(t, instructions, "`"+tool.Tool.Name+"`")
	}
	assert.Contains(t, instructions, "1. Call `check_domains`")
	assert.Contains(t, instructions, "to `aggregate_statuses`")
	assert.Contains(t, instructions, "Use `inspect_domain_chain`")
	assert.NotContains(t, instructions, "{{")
}

// listTools returns the raw tools/list response of s.
func listTools(t *testing.T, s *server.MCPServer) string {
	t.Helper()
	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestServerBuilder(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Build Without Tools",
			testFunc: func(t *testing.T) {
				s, err := NewServerBuilder().WithVersion("1.0.0").Build()
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.NotContains(t, listTools(t, s), "check_domains")
			},
		},
		{
			name: "Build With Defaults",
			testFunc: func(t *testing.T) {
				s, err := NewServerBuilder().
					WithConfig(config.Default()).
					WithVersion("1.0.0").
					WithDefaultTools().
					WithDefaultResources().
					WithInstructions("use the tools").
					Build()
				require.NoError(t, err)

				tools := listTools(t, s)
				assert.Contains(t, tools, "check_domains")
				assert.Contains(t, tools, "aggregate_statuses")
				assert.Contains(t, tools, "inspect_domain_chain")
			},
		},
		{
			name: "Extra Tools Are Kept",
			testFunc: func(t *testing.T) {
				extra := ToolDefinition{
					Tool: mcp.NewTool("ping"),
					Handler: func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
						return mcp.NewToolResultText("pong"), nil
					},
				}
				s, err := NewServerBuilder().WithTools(extra).WithDefaultTools().Build()
				require.NoError(t, err)
				tools := listTools(t, s)
				assert.Contains(t, tools, `"ping"`)
				assert.Contains(t, tools, `"check_domains"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestServe_CancelledContext(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvMinRemainingDays, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logBuf, out bytes.Buffer
	log := logger.NewJSONLogger(&logBuf, "mcp-server", false)

	err := serve(ctx, "1.3.3.7", log, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, logBuf.String(), `"component":"mcp-server"`)
	assert.Contains(t, logBuf.String(), "Serving TLS Certificate Expiry Monitor 1.3.3.7 on stdio")
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "/nonexistent/config.yaml")

	err := serve(context.Background(), "1.3.3.7", nil, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
