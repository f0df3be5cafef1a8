package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"orderdocs/internal/model"
	"orderdocs/internal/repository"
)

// RecordJSONFile is a repository.RecordStore backed by one pretty-printed JSON
// array file per document type. The whole file is rewritten on every upsert,
// which keeps reads trivially consistent within one process at the cost of
// write amplification. A store file that fails to decode reads as empty, so a
// corrupt store is reset (not preserved) by the next successful write.
//
// A process-wide mutex serializes writers; concurrent writers from separate
// processes are not supported.
type RecordJSONFile struct {
	dir string
	mu  sync.Mutex
}

// NewRecordJSONFile creates a store rooted at dir, creating dir if missing.
func NewRecordJSONFile(dir string) (*RecordJSONFile, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &RecordJSONFile{dir: dir}, nil
}

var _ repository.RecordStore = (*RecordJSONFile)(nil)

// keyProbe extracts the order_id of a serialized record.
type keyProbe struct {
	OrderID *string `json:"order_id"`
}

// Upsert merges rec into its type's store file.
func (s *RecordJSONFile) Upsert(ctx context.Context, rec model.Record) (repository.WriteOutcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t := rec.DocType()
	if !t.Known() {
		return "", repository.ErrUnknownStore
	}

	incoming, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.readEntries(t)

	outcome := repository.OutcomeInserted
	if key := rec.Key(); key != "" {
		for i, entry := range entries {
			if probeKey(entry) == key {
				entries[i] = incoming
				outcome = repository.OutcomeUpdated
				break
			}
		}
	}
	if outcome == repository.OutcomeInserted {
		entries = append(entries, json.RawMessage(incoming))
	}

	if err := s.writeEntries(t, entries); err != nil {
		return "", err
	}
	return outcome, nil
}

// Load returns all records of a store; absent or corrupt files read as empty.
func (s *RecordJSONFile) Load(ctx context.Context, t model.DocumentType) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.Known() {
		return nil, repository.ErrUnknownStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEntries(t), nil
}

// Find returns the record with the given order_id.
func (s *RecordJSONFile) Find(ctx context.Context, t model.DocumentType, orderID string) (json.RawMessage, error) {
	entries, err := s.Load(ctx, t)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if probeKey(entry) == orderID {
			return entry, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (s *RecordJSONFile) path(t model.DocumentType) string {
	return filepath.Join(s.dir, t.StoreFilename())
}

// readEntries loads a store file. Absent or undecodable content reads as an
// empty sequence.
func (s *RecordJSONFile) readEntries(t model.DocumentType) []json.RawMessage {
	data, err := os.ReadFile(s.path(t))
	if err != nil {
		return []json.RawMessage{}
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return []json.RawMessage{}
	}
	return entries
}

// writeEntries rewrites a store file through a temp file + rename so a failed
// write cannot truncate the previous content.
func (s *RecordJSONFile) writeEntries(t model.DocumentType, entries []json.RawMessage) error {
	// Re-decode so the whole array prints uniformly indented.
	var pretty []any
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := json.Unmarshal(raw, &pretty); err != nil {
		return fmt.Errorf("reshape store: %w", err)
	}
	data, err := json.MarshalIndent(pretty, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, t.StoreFilename()+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(t)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func probeKey(entry json.RawMessage) string {
	var p keyProbe
	if err := json.Unmarshal(entry, &p); err != nil || p.OrderID == nil {
		return ""
	}
	return *p.OrderID
}
