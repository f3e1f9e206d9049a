package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"orderapi/internal/repository"
)

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]repository.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
