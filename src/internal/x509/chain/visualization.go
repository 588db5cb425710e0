// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006-01-02"

// printer formats day counts with digit grouping.
var printer = message.NewPrinter(language.English)

// RenderASCIITree renders an inspected chain as an ASCII tree diagram.
//
// Each line shows a pass or fail marker, the subject and the role of the
// certificate; failing lines also carry the verdict.
//
// Parameters:
//   - reports: Output of [Inspect]
//
// Returns:
//   - string: Tree representation of the chain
func RenderASCIITree(reports []CertificateReport) string {
	if len(reports) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, r := range reports {
		connector := "├── "
		if i == len(reports)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if r.Verdict != VerdictValid {
			statusIcon = "✗"
		}

		result.WriteString(connector)
		result.WriteString("[" + statusIcon + "] ")
		result.WriteString(subjectOrPlaceholder(r))
		result.WriteString(" (" + r.Role + ")")
		if r.Verdict != VerdictValid {
			result.WriteString(" " + string(r.Verdict))
		}
		result.WriteString("\n")
	}

	return result.String()
}

// RenderTable renders an inspected chain as a markdown table.
//
// Parameters:
//   - reports: Output of [Inspect]
//
// Returns:
//   - string: Markdown table with role, subject, issuer, window, days left and verdict
func RenderTable(reports []CertificateReport) string {
	if len(reports) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Not Before", "Not After", "Days Left", "Verdict"})

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		notBefore, notAfter, days := "-", "-", "-"
		if r.Verdict != VerdictUndecodable {
			notBefore = r.NotBefore.Format(dateLayout)
			notAfter = r.NotAfter.Format(dateLayout)
			days = printer.Sprintf("%d", r.DaysRemaining)
		}

		rows = append(rows, []string{
			printer.Sprintf("%d", r.Index+1),
			r.Role,
			subjectOrPlaceholder(r),
			r.Issuer,
			notBefore,
			notAfter,
			days,
			string(r.Verdict),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

func subjectOrPlaceholder(r CertificateReport) string {
	if r.Subject == "" {
		return "<unnamed>"
	}
	return r.Subject
}
