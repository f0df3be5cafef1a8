package model

// DocumentType labels the business documents the pipeline understands.
// Classification that matches none of the known labels yields DocumentTypeUnknown,
// which is a normal outcome, not an error.
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeOrderSummary  DocumentType = "order_summary"
	DocumentTypeUnknown       DocumentType = "unknown"
)

// Known reports whether t is one of the persistable document types.
func (t DocumentType) Known() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeOrderSummary:
		return true
	}
	return false
}

// StoreFilename is the name of the per-type JSON store file for t.
func (t DocumentType) StoreFilename() string {
	return string(t) + ".json"
}

// ParseDocumentType maps a string (e.g. an URL path segment) to a known DocumentType.
func ParseDocumentType(s string) (DocumentType, bool) {
	t := DocumentType(s)
	if t.Known() {
		return t, true
	}
	return DocumentTypeUnknown, false
}

// Table is one extracted table: its page number and raw cell rows.
// Cells may be empty strings where the extractor found no content.
type Table struct {
	Page int        `json:"page"`
	Rows [][]string `json:"table"`
}

// RawDocument is the extraction collaborator's output for one document:
// page-ordered plain text (page boundaries marked) plus tables in document order.
// It is owned by a single pipeline iteration and not retained afterwards.
type RawDocument struct {
	Text   string  `json:"text"`
	Tables []Table `json:"tables"`
}
