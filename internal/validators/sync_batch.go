package validators

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/MKhiriev/go-finance-tracker/models"
)

const syncBatchSchemaURL = "sync_batch.json"

//go:embed schema/sync_batch.json
var syncBatchSchema []byte

// SyncBatchValidator checks the shape of a pushed batch against the
// sync_batch.json JSON Schema: ids are UUIDs, enums are known, amounts are
// decimal strings with the right sign for their transaction type.
//
// It only rejects malformed batches. Ownership, conflicts and transfer
// pairing are decided by the sync service.
type SyncBatchValidator struct {
	schema *jsonschema.Schema
}

// NewSyncBatchValidator compiles the embedded schema.
func NewSyncBatchValidator() (Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(syncBatchSchema))
	if err != nil {
		return nil, fmt.Errorf("error decoding sync batch schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err = c.AddResource(syncBatchSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("error adding sync batch schema: %w", err)
	}

	schema, err := c.Compile(syncBatchSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("error compiling sync batch schema: %w", err)
	}

	return &SyncBatchValidator{schema: schema}, nil
}

// Validate accepts a models.SyncBatch (or pointer to one) or its raw JSON
// encoding. Field scoping is not supported.
func (v *SyncBatchValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	var raw []byte
	switch value := obj.(type) {
	case models.SyncBatch:
		return v.validateBatch(value)
	case *models.SyncBatch:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateBatch(*value)
	case json.RawMessage:
		raw = value
	case []byte:
		raw = value
	default:
		return ErrUnsupportedType
	}

	return v.validateJSON(raw)
}

func (v *SyncBatchValidator) validateBatch(batch models.SyncBatch) error {
	if err := checkTimestamps(batch); err != nil {
		return err
	}

	raw, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncBatch, err)
	}
	return v.validateJSON(raw)
}

func (v *SyncBatchValidator) validateJSON(raw []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncBatch, err)
	}

	if err = v.schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncBatch, err)
	}

	return nil
}

// checkTimestamps catches timestamps left out of the request body. Decoded
// into the struct they are zero and marshal back as valid date-times.
func checkTimestamps(batch models.SyncBatch) error {
	for _, r := range batch.Records() {
		if r.GetCreatedAt().IsZero() || r.GetUpdatedAt().IsZero() {
			return fmt.Errorf("%w: %s %s: %w", ErrInvalidSyncBatch, r.Kind(), r.GetID(), ErrMissingTimestamp)
		}
	}
	for _, t := range batch.Transactions {
		if t.TransactionDate.IsZero() {
			return fmt.Errorf("%w: transaction %s: %w", ErrInvalidSyncBatch, t.ID, ErrMissingTimestamp)
		}
	}
	return nil
}
