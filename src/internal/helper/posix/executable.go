// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// FallbackName is returned by [GetExecutableName] when os.Args[0] is unusable.
const FallbackName = "tls-cert-expiry-monitor"

// GetExecutableName returns the executable name without extension.
// It takes the base name of os.Args[0] and strips a trailing ".exe".
//
// Returns:
//   - string: Clean executable name suitable for CLI usage
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return FallbackName
	}

	name := filepath.Base(os.Args[0])

	// A Windows path seen on a Unix host is not split by filepath.Base.
	if strings.Contains(name, "\\") || (strings.Contains(name, "/") && !strings.Contains(name, string(filepath.Separator))) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}
