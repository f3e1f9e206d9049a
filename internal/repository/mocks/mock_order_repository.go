package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"orderapi/internal/model"
	"orderapi/internal/repository"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error) {
	args := m.Called(ctx, o, evt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Order]), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	args := m.Called(ctx, customerID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Order]), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error) {
	args := m.Called(ctx, o, evt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string, evt model.Event) error {
	args := m.Called(ctx, id, evt)
	return args.Error(0)
}

func (m *MockOrderRepository) ListForExport(ctx context.Context) ([]model.OrderExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderExportRow), args.Error(1)
}
