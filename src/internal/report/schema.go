// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
)

// ErrInvalidStatuses indicates a status batch that does not match the schema.
var ErrInvalidStatuses = errors.New("report: invalid status batch")

//go:embed statuses.schema.json
var statusesSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(statusesSchema))
})

// Batch is a status batch as exchanged between the monitor and the reporter.
type Batch struct {
	ReqID    string           `json:"req_id,omitempty"`
	Statuses []monitor.Status `json:"statuses"`
}

// ValidateStatusesJSON checks data against the embedded status schema and
// decodes it.
//
// Both a bare JSON array of statuses and an object of the form
// {"req_id": "...", "statuses": [...]} are accepted. Only the shape is
// checked: records with an empty domain, or marked valid while carrying an
// error, are kept so that one bad record never hides the rest of the batch.
//
// Parameters:
//   - data: JSON document
//
// Returns:
//   - Batch: Decoded batch; ReqID is empty for a bare array
//   - error: [ErrInvalidStatuses] listing every schema violation
func ValidateStatusesJSON(data []byte) (Batch, error) {
	schema, err := compiledSchema()
	if err != nil {
		return Batch{}, fmt.Errorf("report: compile status schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrInvalidStatuses, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return Batch{}, fmt.Errorf("%w: %s", ErrInvalidStatuses, strings.Join(details, "; "))
	}

	var batch Batch
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &batch.Statuses)
	} else {
		err = json.Unmarshal(trimmed, &batch)
	}
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrInvalidStatuses, err)
	}

	return batch, nil
}
