// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain retrieves [X.509] certificate chains from TLS endpoints
// and checks their validity windows. It provides capabilities to:
//   - Fetch the chain a server presents during a verified TLS handshake.
//   - Decide, per certificate and per chain, whether every certificate
//     remains valid for a minimum number of days.
//   - Inspect and render a chain as a table or tree for operators.
//
// Failures are classified as network or certificate errors through [Error],
// and an expiring certificate is distinguished from a failing one: the first
// is reported as false without an error.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
