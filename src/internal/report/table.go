// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
)

// RenderTable renders statuses as a markdown table, one row per domain in
// input order.
func RenderTable(statuses []monitor.Status) string {
	if len(statuses) == 0 {
		return "No domains checked"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Domain", "State", "Valid", "Error"})

	rows := make([][]string, 0, len(statuses))
	for i, st := range statuses {
		errText := st.Error
		if errText == "" {
			errText = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			st.Domain,
			string(st.Classify()),
			strconv.FormatBool(st.Valid),
			errText,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
