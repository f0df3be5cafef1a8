package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentType(t *testing.T) {
	assert.True(t, DocumentTypeInvoice.Known())
	assert.True(t, DocumentTypePurchaseOrder.Known())
	assert.True(t, DocumentTypeOrderSummary.Known())
	assert.False(t, DocumentTypeUnknown.Known())
	assert.False(t, DocumentType("receipt").Known())

	assert.Equal(t, "invoice.json", DocumentTypeInvoice.StoreFilename())

	got, ok := ParseDocumentType("purchase_order")
	assert.True(t, ok)
	assert.Equal(t, DocumentTypePurchaseOrder, got)

	got, ok = ParseDocumentType("receipt")
	assert.False(t, ok)
	assert.Equal(t, DocumentTypeUnknown, got)
}

// Top-level scalar fields must serialize as explicit nulls when unparsed;
// line item fields are omitted instead, so an item carries only what was parsed.
func TestRecordJSONShape(t *testing.T) {
	inv := &Invoice{Type: DocumentTypeInvoice, Products: []ProductLineItem{}}
	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "invoice", m["type"])
	assert.Contains(t, m, "order_id")
	assert.Nil(t, m["order_id"])
	assert.Contains(t, m, "total_price")
	assert.Nil(t, m["total_price"])

	products, ok := m["products"].([]any)
	require.True(t, ok)
	assert.Empty(t, products)
}

func TestProductLineItemJSONShape(t *testing.T) {
	qty := 5
	data, err := json.Marshal(ProductLineItem{ProductName: "Chai", Quantity: &qty})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "Chai", m["product_name"])
	assert.Equal(t, 5.0, m["quantity"])
	assert.NotContains(t, m, "unit_price")
	assert.NotContains(t, m, "total")
	assert.NotContains(t, m, "product_id")
}

func TestRecordKeys(t *testing.T) {
	id := "10248"
	assert.Equal(t, "10248", (&Invoice{OrderID: &id}).Key())
	assert.Equal(t, "", (&Invoice{}).Key())
	assert.Equal(t, "10248", (&PurchaseOrder{OrderID: &id}).Key())
	assert.Equal(t, "10248", (&OrderSummary{OrderID: &id}).Key())
}
