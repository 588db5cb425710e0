// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version provides centralized version information for the TLS certificate expiry monitor.
package version

// Version holds the current version of the TLS certificate expiry monitor.
// This value can be overridden at build time using ldflags.
var Version = "0.1.0"

// UserAgent returns the User-Agent sent with the probe request after the TLS handshake.
func UserAgent() string {
	return "TLS-Cert-Expiry-Monitor/" + Version + " (+https://github.com/H0llyW00dzZ/tls-cert-expiry-monitor)"
}
