// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// mcp-server serves the certificate expiry monitor over the Model Context
// Protocol on stdio.
//
// # Usage
//
//	mcp-server
//
// The configuration file is read from CERT_MONITOR_CONFIG_FILE when set.
// Logs are written as JSON lines to stderr; stdout carries the protocol.
//
// # Client configuration
//
//	{
//	  "mcpServers": {
//	    "tls-cert-expiry-monitor": {
//	      "command": "/path/to/mcp-server",
//	      "env": {"CERT_MONITOR_CONFIG_FILE": "/path/to/config.yaml"}
//	    }
//	  }
//	}
package main
