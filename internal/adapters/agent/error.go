package agent

import (
	"encoding/json"
	"errors"
	"io"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrorRecord is the document written when a command fails.
type ErrorRecord struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure by kind.
type ErrorBody struct {
	Kind    domain.Kind    `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type metadataer interface {
	Metadata() map[string]any
}

// NewErrorRecord builds the record for err. Details collect the metadata of
// every error in the chain; outer values win on key collisions.
func NewErrorRecord(err error) ErrorRecord {
	details := make(map[string]any)
	for current := err; current != nil; current = errors.Unwrap(current) {
		md, ok := current.(metadataer)
		if !ok {
			continue
		}
		for k, v := range md.Metadata() {
			if _, exists := details[k]; !exists {
				details[k] = v
			}
		}
	}

	return ErrorRecord{Error: ErrorBody{
		Kind:    domain.KindOf(err),
		Message: err.Error(),
		Details: details,
	}}
}

// WriteError writes the error record for err as one JSON line.
func WriteError(w io.Writer, err error) error {
	if encErr := json.NewEncoder(w).Encode(NewErrorRecord(err)); encErr != nil {
		return zerr.Wrap(encErr, "failed to write error record")
	}
	return nil
}
