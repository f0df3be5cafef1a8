package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"orderdocs/internal/logger"
	"orderdocs/internal/model"
	"orderdocs/internal/pipeline"
	"orderdocs/internal/repository"
	"orderdocs/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// IngestResult is the service-level DTO for one processed upload.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	DocType    string `json:"doc_type"`
	Outcome    string `json:"outcome"`
	OrderID    string `json:"order_id,omitempty"`
}

// HistoryResult is the service-level DTO for paginated journal entries.
type HistoryResult struct {
	Items []model.IngestedDocument `json:"data"`
	Total int                      `json:"total"`
}

// DocumentService defines the use cases of the HTTP surface.
type DocumentService interface {
	// Ingest stores the original upload in object storage, runs it through the
	// parsing pipeline, and journals the outcome. Unknown or unparseable
	// documents are an accepted outcome, not an error.
	Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*IngestResult, error)

	// History returns journal entries using limit/offset and a total count.
	History(ctx context.Context, limit, offset int) (*HistoryResult, error)

	// Records returns the full record sequence of one per-type store.
	Records(ctx context.Context, t model.DocumentType) ([]json.RawMessage, error)

	// Record returns a single record by order_id.
	Record(ctx context.Context, t model.DocumentType, orderID string) (json.RawMessage, error)

	// DownloadURL returns a time-limited URL for the original uploaded document.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Download streams the original uploaded document from object storage, for
	// callers that cannot follow a presigned URL.
	Download(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	runner  *pipeline.Runner
	records repository.RecordStore
	journal repository.IngestionJournal
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, runner *pipeline.Runner, records repository.RecordStore, journal repository.IngestionJournal) DocumentService {
	return &documentService{store: store, runner: runner, records: records, journal: journal}
}

func (s *documentService) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*IngestResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	docID := uuid.New().String()
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", docID+ext))

	// The extraction collaborator consumes file paths, so the upload is spooled
	// to a temp file that also feeds the object storage put.
	tmp, err := os.CreateTemp("", "ingest-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	// Upload the original to object storage
	if _, err := s.store.Put(ctx, key, tmp, storage.PutObjectOptions{
		Size:        n,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	res := s.runner.ProcessFile(ctx, tmp.Name(), originalFilename)
	if res.Outcome == pipeline.OutcomeStoreError {
		// Rollback: the record store write failed, drop the object again.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("store record failed: %v; rollback delete failed: %v", res.Err, delErr)
		}
		return nil, fmt.Errorf("store record failed: %w", res.Err)
	}

	s.journalOutcome(ctx, docID, originalFilename, key, res)

	return &IngestResult{
		DocumentID: docID,
		Filename:   originalFilename,
		DocType:    string(res.DocType),
		Outcome:    string(res.Outcome),
		OrderID:    res.OrderID,
	}, nil
}

// journalOutcome records the processing outcome. The record stores are the system
// of record; a journal write failure is logged, not surfaced to the caller.
func (s *documentService) journalOutcome(ctx context.Context, docID, filename, key string, res pipeline.Result) {
	if s.journal == nil {
		return
	}
	entry := &model.IngestedDocument{
		ID:          docID,
		Filename:    filename,
		StoragePath: key,
		DocType:     string(res.DocType),
		Outcome:     string(res.Outcome),
		ProcessedAt: time.Now().UTC(),
	}
	if res.OrderID != "" {
		entry.OrderID = &res.OrderID
	}
	if _, err := s.journal.Create(ctx, entry); err != nil {
		logger.WithContext(ctx).Warn("journal write failed", "document", filename, "error", err.Error())
	}
}

// History returns paginated journal entries without exposing repository types.
func (s *documentService) History(ctx context.Context, limit, offset int) (*HistoryResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.journal.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Items: res.Items, Total: res.Total}, nil
}

// Records returns all records of one per-type store, in store order.
func (s *documentService) Records(ctx context.Context, t model.DocumentType) ([]json.RawMessage, error) {
	return s.records.Load(ctx, t)
}

// Record returns a single record by order_id.
func (s *documentService) Record(ctx context.Context, t model.DocumentType, orderID string) (json.RawMessage, error) {
	if orderID == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.records.Find(ctx, t, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// DownloadURL returns a presigned URL for the original document behind a journal entry.
func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	entry, err := s.journal.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, entry.StoragePath, 15*time.Minute)
}

// Download opens the stored object behind a journal entry for streaming.
func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	if id == "" {
		return nil, storage.ObjectInfo{}, ErrIDRequired
	}
	entry, err := s.journal.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return s.store.Get(ctx, entry.StoragePath)
}
