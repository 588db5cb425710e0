// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package monitor

// State is the three-valued classification of a checked domain.
type State string

const (
	// StateValid means every certificate outlives the policy deadline.
	StateValid State = "valid"
	// StateExpiringSoon means the chain is valid now but some certificate
	// expires before the policy deadline.
	StateExpiringSoon State = "expiring_soon"
	// StateError means the check failed with a network or certificate error.
	StateError State = "error"
)

// Status is the outcome of checking one domain.
//
// Valid and Error keep the two-field contract consumed by the reporter:
// Valid is true only when Error is empty, and an expiring chain is reported
// as Valid false with an empty Error. State tells the two failure classes apart.
type Status struct {
	Domain string `json:"domain"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error"`
	State  State  `json:"state,omitempty"`
}

// Summary counts statuses per state.
type Summary struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	ExpiringSoon int `json:"expiringSoon"`
	Errors       int `json:"errors"`
}

// Summarize counts statuses per state. Records without a State, as produced
// by older monitors, are classified from Valid and Error.
func Summarize(statuses []Status) Summary {
	s := Summary{Total: len(statuses)}
	for _, st := range statuses {
		switch st.Classify() {
		case StateValid:
			s.Valid++
		case StateExpiringSoon:
			s.ExpiringSoon++
		default:
			s.Errors++
		}
	}
	return s
}

// Classify returns State, deriving it from Valid and Error when unset.
func (s Status) Classify() State {
	if s.State != "" {
		return s.State
	}
	switch {
	case s.Valid:
		return StateValid
	case s.Error == "":
		return StateExpiringSoon
	default:
		return StateError
	}
}
