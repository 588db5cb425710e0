// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-expiry-monitor checks that every certificate in the TLS chain
// served by a list of domains stays valid for a minimum number of days.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-expiry-monitor/cmd/tls-cert-expiry-monitor@latest
//
// # Usage
//
//	tls-cert-expiry-monitor [--config FILE] COMMAND [FLAGS]
//
// # Commands
//
//	check   Check the chains of a domain list once and print the report
//	report  Aggregate a JSON status batch into a report
//	chain   Validate a local certificate bundle offline
//	watch   Check periodically and export Prometheus metrics
//
// # Flags for check and watch
//
//	-s, --source       Domain list: s3://bucket/key, a file, or - for stdin
//	-d, --days         Minimum remaining days of validity (default: 10)
//	    --timeout      Per-domain timeout in seconds (default: 10)
//	    --concurrency  Domains checked at once (default: 8)
//	    --port         TLS port (default: 443)
//	-v, --verbose      Log every certificate's validity window
//
// # Exit status
//
// 0 when every domain or certificate is fine, 2 when issues were reported,
// 1 on any other error and 130 when interrupted.
//
// # Examples
//
// Check a local list and show a table:
//
//	tls-cert-expiry-monitor check -s domains.txt --table
//
// Check a list stored in S3 with a 30 day policy:
//
//	tls-cert-expiry-monitor check -s s3://ops-bucket/domains.txt -d 30
//
// Split checking and reporting:
//
//	tls-cert-expiry-monitor check -s domains.txt --json > statuses.json
//	tls-cert-expiry-monitor report -f statuses.json
//
// Inspect a bundle:
//
//	tls-cert-expiry-monitor chain -f fullchain.pem --tree
package main
