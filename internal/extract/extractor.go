// Package extract is the extraction collaborator boundary: it turns a document
// file into page-ordered plain text plus tables. Downstream parsing depends only
// on the Extractor interface; extraction failures are the caller's cue to skip
// the document, never a parser fault.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"orderdocs/internal/model"
)

// Format identifies the on-disk encoding of an input document.
type Format string

const (
	// FormatPDF is a binary PDF; text is pulled from its content streams.
	FormatPDF Format = "pdf"
	// FormatPayload is a pre-extracted JSON handoff from an upstream
	// geometry-aware extractor: {"text": ..., "tables": [{"page": n, "table": [[...]]}]}.
	// This is the only input format that carries tables.
	FormatPayload Format = "json"
)

// Extractor produces the raw text and tables of a document.
type Extractor interface {
	Extract(ctx context.Context, path string) (*model.RawDocument, error)
}

// FileExtractor dispatches extraction by file extension.
type FileExtractor struct{}

// New creates a FileExtractor.
func New() *FileExtractor {
	return &FileExtractor{}
}

var _ Extractor = (*FileExtractor)(nil)

// Detect returns the document format based on file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".json":
		return FormatPayload, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", filepath.Ext(path))
	}
}

// Eligible reports whether path has an extension the extractor can handle.
func Eligible(path string) bool {
	_, err := Detect(path)
	return err == nil
}

// Extract reads and extracts one document.
func (e *FileExtractor) Extract(ctx context.Context, path string) (*model.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPDF:
		return extractPDF(path)
	case FormatPayload:
		return extractPayload(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}
