// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-friendly helpers shared by the command-line
// entry points.
//
// [GetExecutableName] derives the program name shown in usage strings from
// os.Args[0], so that a renamed or symlinked binary reports its own name:
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName(),
//	    Short: "TLS certificate expiry monitor",
//	}
//
// Behavior across platforms:
//
//   - Linux/macOS: "/usr/bin/monitor" → "monitor"
//   - Windows: "C:\bin\monitor.exe" → "monitor"
//   - Fallback: Empty args → [FallbackName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
