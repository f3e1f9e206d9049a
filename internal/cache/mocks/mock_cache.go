package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCache[T any] struct {
	mock.Mock
}

func (m *MockCache[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	args := m.Called(ctx, id, value, ttl)
	return args.Error(0)
}

func (m *MockCache[T]) Del(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
