// Package parser turns extracted document text (and tables) into typed records.
//
// Parsing is line-oriented: blank lines are dropped, section header lines move a
// current-section cursor, and field lines are matched by fixed label prefixes.
// Unrecognized lines are silently ignored; source documents carry incidental
// text (page markers, footers) that must not derail a parse. Malformed numeric
// fields drop that field or line item only, never the whole record.
package parser

import (
	"errors"
	"strings"

	"orderdocs/internal/model"
)

// ErrEmptyDocument is returned when a document has no text to parse.
var ErrEmptyDocument = errors.New("document has no text")

// ErrUnknownType is returned when Parse is asked for a type it has no parser for.
var ErrUnknownType = errors.New("no parser for document type")

// Parse dispatches to the section parser for the given document type.
func Parse(t model.DocumentType, doc *model.RawDocument) (model.Record, error) {
	switch t {
	case model.DocumentTypeInvoice:
		return ParseInvoice(doc.Text, doc.Tables)
	case model.DocumentTypePurchaseOrder:
		return ParsePurchaseOrder(doc.Text)
	case model.DocumentTypeOrderSummary:
		return ParseOrderSummary(doc.Text)
	default:
		return nil, ErrUnknownType
	}
}

// fieldValue returns the trimmed text after the first colon of a field line.
func fieldValue(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

// textLines splits text into trimmed non-blank lines.
func textLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func strPtr(s string) *string { return &s }
