// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/report"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// checkOutput is the document printed by check --json. It is accepted as
// input by the report command.
type checkOutput struct {
	Statuses []monitor.Status `json:"statuses"`
	Summary  monitor.Summary  `json:"summary"`
	Report   report.Report    `json:"report"`
}

func (a *App) checkCommand() *cobra.Command {
	var (
		flags     checkFlags
		jsonOut   bool
		tableView bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the certificate chains of a list of domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}

			list, err := a.loader().Load(cmd.Context(), cfg.Source.Location)
			if err != nil {
				return err
			}

			var certLog logger.Logger
			if flags.verbose {
				certLog = a.Logger
			}
			checker := newChecker(a, cfg, certLog)

			a.logf("Checking %d domains (min remaining days %d)", len(list), cfg.Defaults.MinRemainingDays)
			statuses := checker.CheckDomains(cmd.Context(), list)
			rep := report.Aggregate(statuses)

			out := cmd.OutOrStdout()
			switch {
			case jsonOut:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(checkOutput{
					Statuses: statuses,
					Summary:  monitor.Summarize(statuses),
					Report:   rep,
				}); err != nil {
					return err
				}
			case tableView:
				fmt.Fprint(out, report.RenderTable(statuses))
				fmt.Fprintln(out)
				fmt.Fprintln(out, rep.String())
			default:
				fmt.Fprintln(out, rep.String())
			}

			if !rep.IsValid() {
				return ErrIssuesFound
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "print statuses, summary and report as JSON")
	cmd.Flags().BoolVar(&tableView, "table", false, "print statuses as a markdown table")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	return cmd
}
