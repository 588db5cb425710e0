// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/report"
)

func (a *App) reportCommand() *cobra.Command {
	var (
		inputFile string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate a JSON status batch into a report",
		Long: `Reads a status batch, either a JSON array of statuses or an object with a
"statuses" array such as the output of check --json, validates it and prints
the aggregated report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.readInput(inputFile)
			if err != nil {
				return fmt.Errorf("read status batch: %w", err)
			}

			batch, err := report.ValidateStatusesJSON(data)
			if err != nil {
				return err
			}

			rep := report.Aggregate(batch.Statuses)

			out := cmd.OutOrStdout()
			if jsonOut {
				data, err := json.Marshal(struct {
					Report report.Report `json:"report"`
				}{rep})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			} else {
				fmt.Fprintln(out, rep.String())
			}

			if !rep.IsValid() {
				return ErrIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "-", "status batch file, - for stdin")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, `print {"report": ...} as JSON`)

	return cmd
}
