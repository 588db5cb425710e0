// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads monitor settings.
//
// Values are resolved in this order, later steps overriding earlier ones:
//  1. Built-in defaults
//  2. A JSON or YAML file (.json, .yaml, .yml) given explicitly or through
//     the CERT_MONITOR_CONFIG_FILE environment variable
//  3. Environment variables (CERT_MONITOR_MIN_REMAINING_DAYS,
//     CERT_MONITOR_DOMAINS_LOCATION)
//
// Command-line flags and tool arguments are applied by their callers on top
// of the loaded [Config].
package config
