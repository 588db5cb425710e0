// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate expiry monitor.
// It implements a Cobra-based CLI with four subcommands:
//   - check: fetch and validate the chains of every listed domain and print a report
//   - report: aggregate a saved status batch
//   - chain: validate a local PEM, DER or PKCS7 bundle offline
//   - watch: run checks periodically and export Prometheus metrics
//
// Commands that find certificate issues return [ErrIssuesFound] so that the
// entry point can exit non-zero.
package cli
