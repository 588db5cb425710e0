// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package domains loads the list of domains to monitor.
//
// A list is plain text with one domain per line. Surrounding whitespace is
// trimmed, blank lines and lines starting with '#' are skipped, and order
// and duplicates are preserved. Lists are read from an S3 object
// (s3://bucket/key), from standard input ("-") or from a local file.
package domains
