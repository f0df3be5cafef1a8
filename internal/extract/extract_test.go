package extract

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdocs/internal/model"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path    string
		format  Format
		wantErr bool
	}{
		{path: "invoice.pdf", format: FormatPDF},
		{path: "INVOICE.PDF", format: FormatPDF},
		{path: "payload.json", format: FormatPayload},
		{path: "dir/nested/order.Json", format: FormatPayload},
		{path: "readme.txt", wantErr: true},
		{path: "noextension", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := Detect(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, Eligible(tt.path))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.True(t, Eligible(tt.path))
		})
	}
}

func TestExtractPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	want := model.RawDocument{
		Text: "Invoice\nOrder ID: 10248",
		Tables: []model.Table{
			{Page: 1, Rows: [][]string{
				{"ProductID", "ProductName", "Quantity", "UnitPrice"},
				{"11", "Queso Cabrales", "12", "21.0"},
			}},
		},
	}
	data, err := json.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, want.Text, got.Text)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, 1, got.Tables[0].Page)
	assert.Equal(t, want.Tables[0].Rows, got.Tables[0].Rows)
}

func TestExtractPayload_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Extract(context.Background(), filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := New().Extract(context.Background(), path)
		assert.Error(t, err)
	})

	t.Run("empty text", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"text":"  ","tables":[]}`), 0o644))
		_, err := New().Extract(context.Background(), path)
		assert.Error(t, err)
	})
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	_, err := New().Extract(context.Background(), "doc.txt")
	assert.Error(t, err)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Extract(ctx, "doc.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextFromStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
1 0 0 1 72 720 Tm
(Invoice) Tj
0 -14 Td
(Order ID: 10248) Tj
0 -14 Td
[(Customer ID: ) (VINET)] TJ
T*
(Order Date: 1996-07-04) '
ET`)

	got := textFromStream(stream)
	assert.Equal(t, "Invoice\nOrder ID: 10248\nCustomer ID: VINET\nOrder Date: 1996-07-04", got)
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Order ID: 10248", want: "Order ID: 10248"},
		{name: "escaped parens", in: `Acme \(Ltd\)`, want: "Acme (Ltd)"},
		{name: "escaped backslash", in: `a\\b`, want: `a\b`},
		{name: "octal space", in: `a\040b`, want: "a b"},
		{name: "tab and newline", in: `a\tb\nc`, want: "a\tb\nc"},
		{name: "unknown escape passes through", in: `a\qb`, want: "aqb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodePDFString([]byte(tt.in)))
		})
	}
}

func TestCleanPageText(t *testing.T) {
	in := "  Order   ID:   10248  \n\n\tTotalPrice    440.0\n"
	assert.Equal(t, "Order ID: 10248\nTotalPrice 440.0", cleanPageText(in))
}
