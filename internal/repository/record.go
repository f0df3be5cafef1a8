package repository

import (
	"context"
	"encoding/json"
	"errors"

	"orderdocs/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (jsonfile for record stores, postgres for
// the ingestion journal).

var (
	// ErrRecordNotFound is returned when no record matches the requested key.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownStore is returned for document types that have no store.
	ErrUnknownStore = errors.New("no store for document type")
)

// WriteOutcome reports what an upsert did to the store.
type WriteOutcome string

const (
	OutcomeInserted WriteOutcome = "inserted"
	OutcomeUpdated  WriteOutcome = "updated"
)

// RecordStore persists parsed records into per-type stores with upsert semantics.
// Within a store there is at most one record per distinct non-empty order_id;
// records without an order_id are always appended. Stores are created lazily on
// first upsert and never deleted by this subsystem.
type RecordStore interface {
	// Upsert merges a record into its type's store by order_id: replace in place
	// (position preserved) when an entry with the same order_id exists, append
	// otherwise. The whole store file is rewritten after every call.
	Upsert(ctx context.Context, rec model.Record) (WriteOutcome, error)

	// Load returns the full record sequence of a store, in store order.
	// An absent or unreadable store reads as an empty sequence.
	Load(ctx context.Context, t model.DocumentType) ([]json.RawMessage, error)

	// Find returns the record with the given order_id, or ErrRecordNotFound.
	Find(ctx context.Context, t model.DocumentType, orderID string) (json.RawMessage, error)
}
