package parser

import (
	"strings"

	"orderdocs/internal/model"
)

// Classify assigns a document type from extracted text using case-insensitive
// substring matching, evaluated in fixed priority order. A text matching none of
// the labels is DocumentTypeUnknown, which is a normal outcome, not an error.
func Classify(text string) model.DocumentType {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "invoice"):
		return model.DocumentTypeInvoice
	case strings.Contains(lowered, "purchase order") || strings.Contains(lowered, "purchase orders"):
		return model.DocumentTypePurchaseOrder
	case strings.Contains(lowered, "shipping details") && strings.Contains(lowered, "order details"):
		return model.DocumentTypeOrderSummary
	default:
		return model.DocumentTypeUnknown
	}
}
