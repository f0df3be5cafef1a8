package mocks

import (
	"context"
	"encoding/json"

	"orderdocs/internal/model"
	"orderdocs/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Upsert(ctx context.Context, rec model.Record) (repository.WriteOutcome, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(repository.WriteOutcome), args.Error(1)
}

func (m *MockRecordStore) Load(ctx context.Context, t model.DocumentType) ([]json.RawMessage, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockRecordStore) Find(ctx context.Context, t model.DocumentType, orderID string) (json.RawMessage, error) {
	args := m.Called(ctx, t, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockIngestionJournal struct {
	mock.Mock
}

func (m *MockIngestionJournal) Create(ctx context.Context, entry *model.IngestedDocument) (*model.IngestedDocument, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestedDocument), args.Error(1)
}

func (m *MockIngestionJournal) FindByID(ctx context.Context, id string) (*model.IngestedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestedDocument), args.Error(1)
}

func (m *MockIngestionJournal) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.IngestedDocument], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.IngestedDocument]), args.Error(1)
}
