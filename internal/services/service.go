// Package services provides typed facades over the API client, one
// method per backend endpoint. The Result envelope is converted back
// into error returns here: a failed call surfaces the backend message
// when there is one, or a fixed per-operation default. Response bodies
// are validated against a single expected schema; anything else becomes
// an api.ShapeError instead of a guessed interpretation.
package services

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitdesk/bitdesk/internal/api"
)

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// resultErr converts a failed Result into an error, preferring the
// backend message over the operation default.
func resultErr(res api.Result, fallback string) error {
	if res.Message != "" {
		return errors.New(res.Message)
	}
	return errors.New(fallback)
}

// openEnvelope decodes the backend envelope and rejects unsuccessful or
// malformed bodies.
func openEnvelope(endpoint string, raw json.RawMessage, fallback string) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &api.ShapeError{Endpoint: endpoint, Cause: err}
	}
	if !env.Success {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, errors.New(fallback)
	}
	if len(env.Data) == 0 {
		return nil, &api.ShapeError{Endpoint: endpoint, Cause: errors.New("missing data field")}
	}
	return env.Data, nil
}
