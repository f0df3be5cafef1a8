package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderdocs/internal/extract"
	"orderdocs/internal/model"
	"orderdocs/internal/pipeline"
	"orderdocs/internal/repository"
	repomocks "orderdocs/internal/repository/mocks"
	"orderdocs/internal/storage"
	storagemocks "orderdocs/internal/storage/mocks"
)

const uploadPayload = `{"text":"Invoice\nOrder ID: 10248\nCustomer ID: VINET\nTotalPrice: 440.0","tables":[]}`

func newIngestService(store *storagemocks.MockStorage, records *repomocks.MockRecordStore, journal *repomocks.MockIngestionJournal) DocumentService {
	runner := pipeline.NewRunner(extract.New(), records, nil, nil)
	return NewDocumentService(store, runner, records, journal)
}

func TestIngest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockRecordStore)
		journal := new(repomocks.MockIngestionJournal)

		store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".json")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			// The spooled byte count is the object size handed to storage.
			return opt.Size == int64(len(uploadPayload))
		})).Return(storage.ObjectInfo{}, nil)
		records.On("Upsert", mock.Anything, mock.Anything).Return(repository.OutcomeInserted, nil)
		journal.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.IngestedDocument) bool {
			return entry.Filename == "invoice.json" &&
				entry.DocType == "invoice" &&
				entry.Outcome == "inserted" &&
				entry.OrderID != nil && *entry.OrderID == "10248"
		})).Return(&model.IngestedDocument{}, nil)

		svc := newIngestService(store, records, journal)
		res, err := svc.Ingest(context.Background(), strings.NewReader(uploadPayload), "invoice.json", "application/json")
		require.NoError(t, err)

		assert.NotEmpty(t, res.DocumentID)
		assert.Equal(t, "invoice.json", res.Filename)
		assert.Equal(t, "invoice", res.DocType)
		assert.Equal(t, "inserted", res.Outcome)
		assert.Equal(t, "10248", res.OrderID)

		store.AssertExpectations(t)
		records.AssertExpectations(t)
		journal.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := newIngestService(new(storagemocks.MockStorage), new(repomocks.MockRecordStore), new(repomocks.MockIngestionJournal))
		_, err := svc.Ingest(context.Background(), nil, "invoice.json", "application/json")
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("storage put failure aborts before pipeline", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockRecordStore)
		journal := new(repomocks.MockIngestionJournal)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket unavailable"))

		svc := newIngestService(store, records, journal)
		_, err := svc.Ingest(context.Background(), strings.NewReader(uploadPayload), "invoice.json", "application/json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload to storage")
		records.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("record store failure rolls back the upload", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockRecordStore)
		journal := new(repomocks.MockIngestionJournal)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		records.On("Upsert", mock.Anything, mock.Anything).
			Return(repository.WriteOutcome(""), errors.New("disk full"))
		store.On("Delete", mock.Anything, mock.Anything).Return(nil)

		svc := newIngestService(store, records, journal)
		_, err := svc.Ingest(context.Background(), strings.NewReader(uploadPayload), "invoice.json", "application/json")
		require.Error(t, err)
		store.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
		journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown document is an accepted outcome", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockRecordStore)
		journal := new(repomocks.MockIngestionJournal)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		journal.On("Create", mock.Anything, mock.Anything).Return(&model.IngestedDocument{}, nil)

		payload := `{"text":"nothing order shaped","tables":[]}`
		svc := newIngestService(store, records, journal)
		res, err := svc.Ingest(context.Background(), strings.NewReader(payload), "note.json", "application/json")
		require.NoError(t, err)
		assert.Equal(t, "unknown", res.DocType)
		assert.Equal(t, string(pipeline.OutcomeSkippedUnknown), res.Outcome)
		assert.Empty(t, res.OrderID)
		records.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("journal failure does not fail the ingest", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockRecordStore)
		journal := new(repomocks.MockIngestionJournal)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		records.On("Upsert", mock.Anything, mock.Anything).Return(repository.OutcomeInserted, nil)
		journal.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		svc := newIngestService(store, records, journal)
		res, err := svc.Ingest(context.Background(), strings.NewReader(uploadPayload), "invoice.json", "application/json")
		require.NoError(t, err)
		assert.Equal(t, "inserted", res.Outcome)
	})
}

func TestHistory(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		journal := new(repomocks.MockIngestionJournal)
		journal.On("List", mock.Anything, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.IngestedDocument]{
				Items: []model.IngestedDocument{{ID: "a"}},
				Total: 1,
			}, nil)

		svc := NewDocumentService(nil, nil, nil, journal)
		res, err := svc.History(context.Background(), 0, -5)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		require.Len(t, res.Items, 1)
		journal.AssertExpectations(t)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		journal := new(repomocks.MockIngestionJournal)
		journal.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		svc := NewDocumentService(nil, nil, nil, journal)
		_, err := svc.History(context.Background(), 10, 0)
		assert.Error(t, err)
	})
}

func TestRecord(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		records := new(repomocks.MockRecordStore)
		records.On("Find", mock.Anything, model.DocumentTypeInvoice, "10248").
			Return(json.RawMessage(`{"order_id":"10248"}`), nil)

		svc := NewDocumentService(nil, nil, records, nil)
		rec, err := svc.Record(context.Background(), model.DocumentTypeInvoice, "10248")
		require.NoError(t, err)
		assert.JSONEq(t, `{"order_id":"10248"}`, string(rec))
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, new(repomocks.MockRecordStore), nil)
		_, err := svc.Record(context.Background(), model.DocumentTypeInvoice, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found", func(t *testing.T) {
		records := new(repomocks.MockRecordStore)
		records.On("Find", mock.Anything, model.DocumentTypeInvoice, "99999").
			Return(nil, repository.ErrRecordNotFound)

		svc := NewDocumentService(nil, nil, records, nil)
		_, err := svc.Record(context.Background(), model.DocumentTypeInvoice, "99999")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDownload(t *testing.T) {
	t.Run("streams the journaled object", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		journal := new(repomocks.MockIngestionJournal)

		journal.On("FindByID", mock.Anything, "doc-1").
			Return(&model.IngestedDocument{ID: "doc-1", StoragePath: "documents/doc-1.pdf"}, nil)
		store.On("Get", mock.Anything, "documents/doc-1.pdf").
			Return(io.NopCloser(strings.NewReader("%PDF-1.4")), storage.ObjectInfo{
				Key:         "documents/doc-1.pdf",
				Size:        8,
				ContentType: "application/pdf",
			}, nil)

		svc := NewDocumentService(store, nil, nil, journal)
		rc, info, err := svc.Download(context.Background(), "doc-1")
		require.NoError(t, err)
		defer rc.Close()

		assert.Equal(t, "application/pdf", info.ContentType)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
		store.AssertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, nil, new(repomocks.MockIngestionJournal))
		_, _, err := svc.Download(context.Background(), "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		journal := new(repomocks.MockIngestionJournal)
		journal.On("FindByID", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, nil, nil, journal)
		_, _, err := svc.Download(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDownloadURL(t *testing.T) {
	t.Run("presigns the journaled object", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		journal := new(repomocks.MockIngestionJournal)

		journal.On("FindByID", mock.Anything, "doc-1").
			Return(&model.IngestedDocument{ID: "doc-1", StoragePath: "documents/doc-1.pdf"}, nil)
		store.On("PresignGet", mock.Anything, "documents/doc-1.pdf", 15*time.Minute).
			Return("https://storage.example/doc-1.pdf?sig=abc", nil)

		svc := NewDocumentService(store, nil, nil, journal)
		url, err := svc.DownloadURL(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example/doc-1.pdf?sig=abc", url)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, nil, new(repomocks.MockIngestionJournal))
		_, err := svc.DownloadURL(context.Background(), "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		journal := new(repomocks.MockIngestionJournal)
		journal.On("FindByID", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, nil, nil, journal)
		_, err := svc.DownloadURL(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
