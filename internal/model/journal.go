package model

import "time"

// IngestedDocument is one journal row describing the outcome of processing a
// single uploaded document. The record stores remain the system of record; the
// journal exists for reporting and audit.
type IngestedDocument struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	DocType     string    `json:"doc_type"`
	Outcome     string    `json:"outcome"`
	OrderID     *string   `json:"order_id"`
	ProcessedAt time.Time `json:"processed_at"`
}
