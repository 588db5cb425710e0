// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/cli"
	verpkg "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/version"
)

func TestVersionInit(t *testing.T) {
	assert.NotEmpty(t, version, "version should not be empty after init")

	if version != verpkg.Version {
		// Set by ldflags, which is also valid
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Success", err: nil, want: 0},
		{name: "Issues Found", err: cli.ErrIssuesFound, want: 2},
		{name: "Wrapped Issues Found", err: fmt.Errorf("check: %w", cli.ErrIssuesFound), want: 2},
		{name: "Other Error", err: errors.New("boom"), want: 1},
		{name: "Missing Source", err: cli.ErrSourceRequired, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
