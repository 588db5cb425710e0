// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	x509certs "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
)

func (a *App) chainCommand() *cobra.Command {
	var (
		inputFile string
		days      int
		tree      bool
		table     bool
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Validate a local certificate bundle offline",
		Long: `Decodes a PEM, DER or PKCS7 bundle, leaf first, and applies the same
validity rules as check without any network access.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputFile == "" {
				return ErrInputFileRequired
			}

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				if days < 0 {
					return ErrNegativeDays
				}
				cfg.Defaults.MinRemainingDays = days
			}

			data, err := a.readInput(inputFile)
			if err != nil {
				return fmt.Errorf("read bundle: %w", err)
			}

			certs, err := x509certs.New().DecodeMultiple(data)
			if err != nil {
				return err
			}

			raw := x509chain.FromCertificates(certs)
			policy := x509chain.NewPolicy(cfg.Defaults.MinRemainingDays)

			reports, err := x509chain.Inspect(raw, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOut:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			case tree:
				fmt.Fprint(out, x509chain.RenderASCIITree(reports))
			case table:
				fmt.Fprint(out, x509chain.RenderTable(reports))
			}

			ok, err := x509chain.ValidateChain(raw, policy)
			switch {
			case err != nil:
				fmt.Fprintf(out, "Chain invalid: %v\n", err)
				return ErrIssuesFound
			case !ok:
				fmt.Fprintf(out, "Chain expires within %d days\n", cfg.Defaults.MinRemainingDays)
				return ErrIssuesFound
			default:
				fmt.Fprintf(out, "Chain valid for at least %d days\n", cfg.Defaults.MinRemainingDays)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "certificate bundle (PEM, DER or PKCS7), - for stdin")
	cmd.Flags().IntVarP(&days, "days", "d", config.DefaultMinRemainingDays, "minimum remaining days of validity")
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "display the chain as an ASCII tree")
	cmd.Flags().BoolVar(&table, "table", false, "display the chain as a markdown table")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "print per-certificate details as JSON")
	cmd.MarkFlagsMutuallyExclusive("tree", "table", "json")

	return cmd
}
