// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
)

// ErrMalformedReport indicates JSON that is neither {"Valid":null} nor {"Invalid":"..."}.
var ErrMalformedReport = errors.New("report: malformed report")

// Report is the outcome of aggregating a batch of statuses.
// The zero value is a valid report.
type Report struct {
	invalid bool
	message string
}

// Valid returns a report with no issues.
func Valid() Report { return Report{} }

// Invalid returns a failing report carrying message.
func Invalid(message string) Report { return Report{invalid: true, message: message} }

// IsValid reports whether no issues were found.
func (r Report) IsValid() bool { return !r.invalid }

// Message returns the issue listing, empty for a valid report.
func (r Report) Message() string { return r.message }

// String returns a human-readable rendering.
func (r Report) String() string {
	if r.IsValid() {
		return "Everything is fine"
	}
	return r.message
}

// Aggregate reduces statuses to a single report.
//
// Every status with Valid false is an issue, including soft misses whose
// Error is empty. With no issues the report is valid; otherwise the message
// is "Found N issues." followed by one "Domain <domain> (<error>)" line per
// issue, in input order.
//
// Aggregate is pure: the same input always yields the same report.
func Aggregate(statuses []monitor.Status) Report {
	var lines []string
	for _, st := range statuses {
		if !st.Valid {
			lines = append(lines, "Domain "+st.Domain+" ("+st.Error+")")
		}
	}

	if len(lines) == 0 {
		return Valid()
	}

	return Invalid("Found " + strconv.Itoa(len(lines)) + " issues.\n" + strings.Join(lines, "\n"))
}

// MarshalJSON encodes the report as {"Valid":null} or {"Invalid":"..."}.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.IsValid() {
		return []byte(`{"Valid":null}`), nil
	}
	return json.Marshal(struct {
		Invalid string `json:"Invalid"`
	}{r.message})
}

// UnmarshalJSON decodes the shapes produced by [Report.MarshalJSON].
func (r *Report) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if len(fields) != 1 {
		return fmt.Errorf("%w: want exactly one of Valid or Invalid", ErrMalformedReport)
	}

	if raw, ok := fields["Valid"]; ok {
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%w: Valid carries no payload", ErrMalformedReport)
		}
		*r = Valid()
		return nil
	}

	raw, ok := fields["Invalid"]
	if !ok {
		return fmt.Errorf("%w: unknown variant", ErrMalformedReport)
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	*r = Invalid(msg)
	return nil
}
