package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderapi/internal/model"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportOrders(ctx context.Context) (*model.OrderExport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderExport), args.Error(1)
}
