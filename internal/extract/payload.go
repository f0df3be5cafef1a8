package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"orderdocs/internal/model"
)

// extractPayload reads a pre-extracted JSON handoff file. Upstream geometry-aware
// extractors serialize their output in this shape, which is how tables reach the
// invoice parser.
func extractPayload(path string) (*model.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc model.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode payload %s: %w", path, err)
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("payload %s has no text", path)
	}

	doc.Text = strings.TrimSpace(doc.Text)
	return &doc, nil
}
