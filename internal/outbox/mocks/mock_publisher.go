package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	args := m.Called(ctx, eventName, entityName, data)
	return args.Error(0)
}
