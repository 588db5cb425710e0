// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/domains"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/report"
	x509certs "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

var errNoDomains = errors.New("no domains given")

// toolHandlers binds the tool handlers to their dependencies.
type toolHandlers struct {
	config  *config.Config
	fetcher monitor.ChainFetcher
	log     logger.Logger
}

// checkDomainsResult is the JSON document returned by check_domains.
type checkDomainsResult struct {
	Statuses []monitor.Status `json:"statuses"`
	Summary  monitor.Summary  `json:"summary"`
	Report   report.Report    `json:"report"`
}

// minRemainingDays reads the optional policy argument.
func (h *toolHandlers) minRemainingDays(request mcp.CallToolRequest) (int, error) {
	days := request.GetInt("min_remaining_days", h.config.Defaults.MinRemainingDays)
	if days < 0 {
		return 0, config.ErrNegativeDays
	}
	return days, nil
}

// handleCheckDomains checks every listed domain and returns the statuses,
// their summary and the aggregated report as JSON.
//
// Per-domain failures are part of the result; only malformed arguments
// produce a tool error.
func (h *toolHandlers) handleCheckDomains(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("domains")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	days, err := h.minRemainingDays(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list := domains.Parse(strings.ReplaceAll(raw, ",", "\n"))
	if len(list) == 0 {
		return mcp.NewToolResultError(errNoDomains.Error()), nil
	}

	checker := monitor.NewChecker(h.fetcher, days, h.config.Defaults.Concurrency, h.log)
	statuses := checker.CheckDomains(ctx, list)

	data, err := json.MarshalIndent(checkDomainsResult{
		Statuses: statuses,
		Summary:  monitor.Summarize(statuses),
		Report:   report.Aggregate(statuses),
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// handleAggregateStatuses validates a status batch and returns
// {"report": ...} as JSON.
func (h *toolHandlers) handleAggregateStatuses(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("statuses")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	batch, err := report.ValidateStatusesJSON([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(struct {
		Report report.Report `json:"report"`
	}{report.Aggregate(batch.Statuses)})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal report: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

// handleInspectDomainChain fetches one chain and renders a markdown table of
// its certificates followed by the chain verdict.
func (h *toolHandlers) handleInspectDomainChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	domain = strings.TrimSpace(domain)

	days, err := h.minRemainingDays(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includePEM := request.GetBool("include_pem", false)

	raw, err := h.fetcher.FetchChain(ctx, domain)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Domain %s (%v)", domain, err)), nil
	}

	policy := x509chain.NewPolicy(days)
	reports, err := x509chain.Inspect(raw, policy)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Domain %s (%v)", domain, err)), nil
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	fmt.Fprintf(buf, "## Chain for %s\n\n", domain)
	buf.WriteString(x509chain.RenderTable(reports))
	buf.WriteByte('\n')

	ok, err := x509chain.ValidateChain(raw, policy)
	switch {
	case err != nil:
		fmt.Fprintf(buf, "**Invalid**: %v\n", err)
	case !ok:
		fmt.Fprintf(buf, "**Expiring soon**: a certificate expires within %d days\n", days)
	default:
		fmt.Fprintf(buf, "**Valid**: every certificate remains valid for at least %d days\n", days)
	}

	if includePEM {
		buf.WriteString("\n```pem\n")
		buf.Write(encodeChainPEM(raw))
		buf.WriteString("```\n")
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// encodeChainPEM encodes the decodable members of raw as PEM.
func encodeChainPEM(raw x509chain.RawChain) []byte {
	codec := x509certs.New()

	certs := make([]*x509.Certificate, 0, len(raw))
	for _, der := range raw {
		cert, err := codec.DecodeDER(der)
		if err != nil {
			continue
		}
		certs = append(certs, cert)
	}

	return codec.EncodeMultiplePEM(certs)
}
