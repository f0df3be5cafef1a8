package parser

import (
	"testing"

	"orderdocs/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.DocumentType
	}{
		{
			name: "invoice keyword",
			text: "--- Page 1 ---\nINVOICE\nOrder ID: 10248",
			want: model.DocumentTypeInvoice,
		},
		{
			name: "invoice case insensitive",
			text: "this document is an Invoice for order 10248",
			want: model.DocumentTypeInvoice,
		},
		{
			name: "purchase order",
			text: "Purchase Order\n10248 2024-01-01 Acme Corp",
			want: model.DocumentTypePurchaseOrder,
		},
		{
			name: "purchase orders plural",
			text: "PURCHASE ORDERS summary page",
			want: model.DocumentTypePurchaseOrder,
		},
		{
			name: "order summary needs both sections",
			text: "Shipping Details:\nShip Name: X\nOrder Details:\nOrder Date: 2024-01-01",
			want: model.DocumentTypeOrderSummary,
		},
		{
			name: "shipping details alone is not enough",
			text: "Shipping Details:\nShip Name: X",
			want: model.DocumentTypeUnknown,
		},
		{
			name: "invoice wins over purchase order",
			text: "Invoice for Purchase Order 10248",
			want: model.DocumentTypeInvoice,
		},
		{
			name: "purchase order wins over order summary",
			text: "Purchase Order\nShipping Details:\nOrder Details:",
			want: model.DocumentTypePurchaseOrder,
		},
		{
			name: "empty text",
			text: "",
			want: model.DocumentTypeUnknown,
		},
		{
			name: "unrelated text",
			text: "quarterly revenue report",
			want: model.DocumentTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
