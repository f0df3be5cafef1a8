package postgres

import (
	"context"
	"database/sql"

	"orderdocs/internal/model"
	"orderdocs/internal/repository"
)

// JournalPostgres is a PostgreSQL implementation of repository.IngestionJournal.
// It uses database/sql with parameterized queries and contains no business logic.
type JournalPostgres struct {
	db *sql.DB
}

// NewJournalPostgres creates a new JournalPostgres repository.
func NewJournalPostgres(db *sql.DB) *JournalPostgres {
	return &JournalPostgres{db: db}
}

var _ repository.IngestionJournal = (*JournalPostgres)(nil)

// Create inserts a new journal row and returns the stored entry.
func (r *JournalPostgres) Create(ctx context.Context, entry *model.IngestedDocument) (*model.IngestedDocument, error) {
	const q = `
		INSERT INTO ingested_documents (id, filename, storage_path, doc_type, outcome, order_id, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, filename, storage_path, doc_type, outcome, order_id, processed_at
	`
	row := r.db.QueryRowContext(ctx, q,
		entry.ID,
		entry.Filename,
		entry.StoragePath,
		entry.DocType,
		entry.Outcome,
		entry.OrderID,
		entry.ProcessedAt,
	)
	var out model.IngestedDocument
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.StoragePath,
		&out.DocType,
		&out.Outcome,
		&out.OrderID,
		&out.ProcessedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single journal entry by its ID.
func (r *JournalPostgres) FindByID(ctx context.Context, id string) (*model.IngestedDocument, error) {
	const q = `
		SELECT id, filename, storage_path, doc_type, outcome, order_id, processed_at
		FROM ingested_documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var e model.IngestedDocument
	if err := row.Scan(
		&e.ID,
		&e.Filename,
		&e.StoragePath,
		&e.DocType,
		&e.Outcome,
		&e.OrderID,
		&e.ProcessedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns journal entries using LIMIT/OFFSET pagination and a total count.
func (r *JournalPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.IngestedDocument], error) {
	const qCount = `SELECT COUNT(*) FROM ingested_documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, filename, storage_path, doc_type, outcome, order_id, processed_at
		FROM ingested_documents
		ORDER BY processed_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.IngestedDocument, 0)
	for rows.Next() {
		var e model.IngestedDocument
		if err := rows.Scan(
			&e.ID,
			&e.Filename,
			&e.StoragePath,
			&e.DocType,
			&e.Outcome,
			&e.OrderID,
			&e.ProcessedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.IngestedDocument]{
		Items: items,
		Total: total,
	}, nil
}
