// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/domains"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/helper/posix"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

var (
	// ErrIssuesFound indicates that at least one domain or certificate failed.
	ErrIssuesFound = errors.New("cli: certificate issues found")

	// ErrSourceRequired indicates that no domain list location was given.
	ErrSourceRequired = errors.New("cli: domain list location is required (--source or config source.location)")

	// ErrInputFileRequired indicates that the chain command was run without a file.
	ErrInputFileRequired = errors.New("cli: input file is required (--file)")

	// ErrNegativeDays indicates a negative --days value.
	ErrNegativeDays = errors.New("cli: --days must not be negative")
)

// App holds the dependencies shared by every subcommand.
type App struct {
	Version string
	Logger  logger.Logger
	Stdin   io.Reader
	Stdout  io.Writer

	// RootCAs overrides the system trust store for network checks.
	RootCAs *x509.CertPool

	configPath string
}

// NewApp creates an App reading from stdin and writing to stdout.
func NewApp(version string, log logger.Logger) *App {
	return &App{
		Version: version,
		Logger:  log,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
}

// Execute runs the root command with the process arguments.
//
// Parameters:
//   - ctx: Context cancelled on interrupt
//   - version: Version string shown by --version
//   - log: Logger for progress messages
//
// Returns:
//   - error: Command error, [ErrIssuesFound] when problems were reported
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewApp(version, log).Run(ctx, os.Args[1:])
}

// Run executes the command line args.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Command builds the root command and its subcommands.
func (a *App) Command() *cobra.Command {
	name := posix.GetExecutableName()
	rootCmd := &cobra.Command{
		Use:   name,
		Short: "TLS certificate expiry monitor",
		Long: `Checks that every certificate in the TLS chain served by a list of domains
stays valid for a minimum number of days, and aggregates the results into a
single report.`,
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: fmt.Sprintf(`  %[1]s check -s domains.txt
  %[1]s check -s s3://bucket/domains.txt -d 30 --table
  %[1]s check -s domains.txt --json > statuses.json && %[1]s report -f statuses.json
  %[1]s chain -f fullchain.pem --tree
  %[1]s watch -s domains.txt --interval 1h --metrics-addr :9090`, name),
	}
	rootCmd.SetOut(a.Stdout)
	rootCmd.SetIn(a.Stdin)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (.json, .yaml, .yml)")

	rootCmd.AddCommand(
		a.checkCommand(),
		a.reportCommand(),
		a.chainCommand(),
		a.watchCommand(),
	)

	return rootCmd
}

// checkFlags are shared by check and watch.
type checkFlags struct {
	source      string
	days        int
	timeout     int
	concurrency int
	port        int
	verbose     bool
}

func (f *checkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "domain list: s3://bucket/key, a file, or - for stdin")
	cmd.Flags().IntVarP(&f.days, "days", "d", config.DefaultMinRemainingDays, "minimum remaining days of validity")
	cmd.Flags().IntVar(&f.timeout, "timeout", config.DefaultTimeoutSeconds, "per-domain timeout in seconds")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", config.DefaultConcurrency, "domains checked at once")
	cmd.Flags().IntVar(&f.port, "port", config.DefaultPort, "TLS port")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every certificate's validity window")
}

// loadConfig resolves the configuration and applies the flags the user set.
func (a *App) loadConfig(cmd *cobra.Command, f *checkFlags) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Location = f.source
	}
	if flags.Changed("days") {
		if f.days < 0 {
			return nil, ErrNegativeDays
		}
		cfg.Defaults.MinRemainingDays = f.days
	}
	if flags.Changed("timeout") {
		cfg.Defaults.Timeout = f.timeout
	}
	if flags.Changed("concurrency") {
		cfg.Defaults.Concurrency = f.concurrency
	}
	if flags.Changed("port") {
		cfg.Defaults.Port = f.port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Source.Location == "" {
		return nil, ErrSourceRequired
	}
	return cfg, nil
}

func (a *App) fetcher(cfg *config.Config) *x509chain.Fetcher {
	return &x509chain.Fetcher{
		Port:    cfg.Defaults.Port,
		Timeout: cfg.TimeoutDuration(),
		RootCAs: a.RootCAs,
	}
}

func (a *App) loader() *domains.Loader {
	return &domains.Loader{Stdin: a.Stdin, Logger: a.Logger}
}

func (a *App) logf(format string, v ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, v...)
	}
}

// readInput reads a file, or stdin for "-".
func (a *App) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.Stdin)
	}
	return os.ReadFile(path)
}
