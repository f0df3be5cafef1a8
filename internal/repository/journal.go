package repository

import (
	"context"

	"orderdocs/internal/model"
)

// IngestionJournal records per-document processing outcomes using SQL queries only.
// No business logic here, strictly persistence operations.
type IngestionJournal interface {
	// Create inserts a new journal row.
	// The caller provides required fields (ID, ProcessedAt) per the schema defaults.
	Create(ctx context.Context, entry *model.IngestedDocument) (*model.IngestedDocument, error)

	// FindByID returns a journal entry by its ID.
	FindByID(ctx context.Context, id string) (*model.IngestedDocument, error)

	// List returns a paginated list of journal entries and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.IngestedDocument], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
