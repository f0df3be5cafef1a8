// Package pipeline drives a document through extraction, classification, section
// parsing and store upsert. Data flows strictly forward; nothing the pipeline does
// to one document is fatal to a batch. The worst outcome is one document skipped
// or one store reset.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"orderdocs/internal/extract"
	"orderdocs/internal/model"
	"orderdocs/internal/parser"
	"orderdocs/internal/repository"
)

// Outcome describes what happened to one document.
type Outcome string

const (
	OutcomeInserted       Outcome = "inserted"
	OutcomeUpdated        Outcome = "updated"
	OutcomeSkippedUnknown Outcome = "skipped_unknown"
	OutcomeSkippedExtract Outcome = "skipped_extract_error"
	OutcomeSkippedParse   Outcome = "skipped_parse_error"
	OutcomeStoreError     Outcome = "store_error"
)

// Result is the per-document processing outcome.
type Result struct {
	Name    string
	DocType model.DocumentType
	Outcome Outcome
	OrderID string
	Err     error
}

// Summary totals one batch run.
type Summary struct {
	Processed int
	Inserted  int
	Updated   int
	Skipped   int
	Errors    int
}

// Runner wires the extraction collaborator, the parsers and the record store.
type Runner struct {
	extractor extract.Extractor
	records   repository.RecordStore
	metrics   *Metrics
	logger    *slog.Logger
}

// NewRunner creates a Runner. metrics may be nil (no counters) and logger may be
// nil (the default slog logger is used).
func NewRunner(extractor extract.Extractor, records repository.RecordStore, metrics *Metrics, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		extractor: extractor,
		records:   records,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run processes every eligible file in inputDir, in directory order. Per-document
// failures are logged and counted, never propagated.
func (r *Runner) Run(ctx context.Context, inputDir string) (Summary, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, entry := range entries {
		if entry.IsDir() || !extract.Eligible(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := r.ProcessFile(ctx, filepath.Join(inputDir, entry.Name()), entry.Name())
		sum.Processed++
		switch res.Outcome {
		case OutcomeInserted:
			sum.Inserted++
		case OutcomeUpdated:
			sum.Updated++
		case OutcomeStoreError:
			sum.Errors++
		default:
			sum.Skipped++
		}
	}
	return sum, nil
}

// ProcessFile extracts one document and runs it through the pipeline. name is the
// display name used in logs and results (callers may process temp files on behalf
// of an upload with its original filename).
func (r *Runner) ProcessFile(ctx context.Context, path, name string) Result {
	doc, err := r.extractor.Extract(ctx, path)
	if err != nil {
		res := Result{Name: name, DocType: model.DocumentTypeUnknown, Outcome: OutcomeSkippedExtract, Err: err}
		r.report(res)
		return res
	}
	return r.ProcessRaw(ctx, name, doc)
}

// ProcessRaw classifies, parses and upserts an already-extracted document.
// Documents of unknown type are skipped without touching any store.
func (r *Runner) ProcessRaw(ctx context.Context, name string, doc *model.RawDocument) Result {
	res := Result{Name: name}

	res.DocType = parser.Classify(doc.Text)
	if !res.DocType.Known() {
		res.Outcome = OutcomeSkippedUnknown
		r.report(res)
		return res
	}

	rec, err := parser.Parse(res.DocType, doc)
	if err != nil {
		res.Outcome = OutcomeSkippedParse
		res.Err = err
		r.report(res)
		return res
	}
	res.OrderID = rec.Key()

	outcome, err := r.records.Upsert(ctx, rec)
	if err != nil {
		res.Outcome = OutcomeStoreError
		res.Err = err
		r.report(res)
		return res
	}

	switch outcome {
	case repository.OutcomeUpdated:
		res.Outcome = OutcomeUpdated
	default:
		res.Outcome = OutcomeInserted
	}
	r.report(res)
	return res
}

func (r *Runner) report(res Result) {
	r.metrics.observe(string(res.DocType), string(res.Outcome))

	attrs := []any{
		"document", res.Name,
		"doc_type", string(res.DocType),
		"outcome", string(res.Outcome),
	}
	if res.OrderID != "" {
		attrs = append(attrs, "order_id", res.OrderID)
	}
	if res.Err != nil {
		attrs = append(attrs, "error", res.Err.Error())
		r.logger.Warn("document processed", attrs...)
		return
	}
	r.logger.Info("document processed", attrs...)
}
