package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	cacheMocks "orderapi/internal/cache/mocks"
	"orderapi/internal/model"
	"orderapi/internal/repository"
	repoMocks "orderapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		customerID string
		product    string
		quantity   int
		setupMocks func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository)
		wantErr    error
	}{
		{
			name:       "happy path",
			customerID: "cust-1",
			product:    "keyboard",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "cust-1").Return(true, nil)
				mOrders.On("Create", ctx, mock.MatchedBy(func(o *model.Order) bool {
					return o.ID != "" && o.CustomerID == "cust-1" && o.Product == "keyboard" && o.Quantity == 2
				}), mock.AnythingOfType("*model.OrderCreatedEvent")).
					Return(&model.Order{ID: "gen-id", CustomerID: "cust-1", Product: "keyboard", Quantity: 2}, nil)
			},
		},
		{
			name:       "validation - empty customer id",
			customerID: "",
			product:    "keyboard",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "validation - empty product",
			customerID: "cust-1",
			product:    "",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {},
			wantErr:    ErrProductRequired,
		},
		{
			name:       "validation - zero quantity",
			customerID: "cust-1",
			product:    "keyboard",
			quantity:   0,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {},
			wantErr:    ErrQuantityInvalid,
		},
		{
			name:       "unknown customer",
			customerID: "ghost",
			product:    "keyboard",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "ghost").Return(false, nil)
			},
			wantErr: ErrCustomerNotFound,
		},
		{
			name:       "customer deleted between check and insert",
			customerID: "cust-1",
			product:    "keyboard",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "cust-1").Return(true, nil)
				mOrders.On("Create", ctx, mock.Anything, mock.Anything).
					Return(nil, repository.ErrCustomerMissing)
			},
			wantErr: ErrCustomerNotFound,
		},
		{
			name:       "repository error",
			customerID: "cust-1",
			product:    "keyboard",
			quantity:   2,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "cust-1").Return(true, nil)
				mOrders.On("Create", ctx, mock.Anything, mock.Anything).
					Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			mCustomers := new(repoMocks.MockCustomerRepository)
			svc := NewOrderService(mOrders, mCustomers, nil)

			tt.setupMocks(mOrders, mCustomers)

			order, err := svc.Create(ctx, tt.customerID, tt.product, tt.quantity)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrProductRequired) ||
					errors.Is(tt.wantErr, ErrQuantityInvalid) || errors.Is(tt.wantErr, ErrCustomerNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
			}
			mOrders.AssertExpectations(t)
			mCustomers.AssertExpectations(t)
		})
	}
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mOrders *repoMocks.MockOrderRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *OrderListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository) {
				mOrders.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Order]{
						Items: []model.Order{{ID: "1"}, {ID: "2"}, {ID: "3"}},
						Total: 3,
					}, nil)
			},
			checkRes: func(t *testing.T, res *OrderListResult) {
				assert.Equal(t, 3, len(res.Items))
				assert.Equal(t, 3, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository) {
				mOrders.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Order]{Items: []model.Order{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository) {
				mOrders.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			svc := NewOrderService(mOrders, nil, nil)

			tt.setupMocks(mOrders)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mOrders.AssertExpectations(t)
		})
	}
}

func TestOrderService_ListByCustomer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		customerID string
		limit      int
		offset     int
		setupMocks func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *OrderListResult)
	}{
		{
			name:       "happy path",
			customerID: "cust-1",
			limit:      10,
			offset:     0,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "cust-1").Return(true, nil)
				mOrders.On("ListByCustomer", ctx, "cust-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Order]{
						Items: []model.Order{{ID: "1", CustomerID: "cust-1"}},
						Total: 1,
					}, nil)
			},
			checkRes: func(t *testing.T, res *OrderListResult) {
				assert.Equal(t, 1, len(res.Items))
				assert.Equal(t, "cust-1", res.Items[0].CustomerID)
			},
		},
		{
			name:       "validation - empty customer id",
			customerID: "",
			limit:      10,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "unknown customer",
			customerID: "ghost",
			limit:      10,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "ghost").Return(false, nil)
			},
			wantErr: ErrCustomerNotFound,
		},
		{
			name:       "pagination boundary - zero limit uses default",
			customerID: "cust-1",
			limit:      0,
			offset:     -5,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("ExistsByID", ctx, "cust-1").Return(true, nil)
				mOrders.On("ListByCustomer", ctx, "cust-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Order]{Items: []model.Order{}, Total: 0}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			mCustomers := new(repoMocks.MockCustomerRepository)
			svc := NewOrderService(mOrders, mCustomers, nil)

			tt.setupMocks(mOrders, mCustomers)

			res, err := svc.ListByCustomer(ctx, tt.customerID, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mOrders.AssertExpectations(t)
			mCustomers.AssertExpectations(t)
		})
	}
}

func TestOrderService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order])
		wantErr    error
	}{
		{
			name: "cache hit skips the database",
			id:   "cached-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mCache.On("Get", ctx, "cached-id").Return(&model.Order{ID: "cached-id"}, nil)
			},
		},
		{
			name: "cache miss loads from the database and caches",
			id:   "valid-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mCache.On("Get", ctx, "valid-id").Return(nil, nil)
				mOrders.On("FindByID", ctx, "valid-id").Return(&model.Order{ID: "valid-id"}, nil)
				mCache.On("Set", ctx, "valid-id", mock.Anything, orderCacheTTL).Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mCache.On("Get", ctx, "missing-id").Return(nil, nil)
				mOrders.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			mCache := new(cacheMocks.MockCache[model.Order])
			svc := NewOrderService(mOrders, nil, mCache)

			tt.setupMocks(mOrders, mCache)

			order, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, tt.id, order.ID)
			}
			mOrders.AssertExpectations(t)
			mCache.AssertExpectations(t)
		})
	}
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		customerID string
		product    string
		quantity   int
		setupMocks func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order])
		wantErr    error
	}{
		{
			name:       "happy path",
			id:         "valid-id",
			customerID: "cust-2",
			product:    "monitor",
			quantity:   1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("Update", ctx, mock.MatchedBy(func(o *model.Order) bool {
					return o.ID == "valid-id" && o.CustomerID == "cust-2" && o.Product == "monitor" && o.Quantity == 1
				}), mock.AnythingOfType("*model.OrderUpdatedEvent")).
					Return(&model.Order{ID: "valid-id", CustomerID: "cust-2", Product: "monitor", Quantity: 1}, nil)
				mCache.On("Set", ctx, "valid-id", mock.Anything, orderCacheTTL).Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			customerID: "cust-2",
			product:    "monitor",
			quantity:   1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "validation - negative quantity",
			id:         "valid-id",
			customerID: "cust-2",
			product:    "monitor",
			quantity:   -1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {},
			wantErr:    ErrQuantityInvalid,
		},
		{
			name:       "not found",
			id:         "missing-id",
			customerID: "cust-2",
			product:    "monitor",
			quantity:   1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("Update", ctx, mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name:       "re-pointed at a missing customer",
			id:         "valid-id",
			customerID: "ghost",
			product:    "monitor",
			quantity:   1,
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("Update", ctx, mock.Anything, mock.Anything).
					Return(nil, repository.ErrCustomerMissing)
			},
			wantErr: ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			mCache := new(cacheMocks.MockCache[model.Order])
			svc := NewOrderService(mOrders, nil, mCache)

			tt.setupMocks(mOrders, mCache)

			order, err := svc.Update(ctx, tt.id, tt.customerID, tt.product, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
			}
			mOrders.AssertExpectations(t)
			mCache.AssertExpectations(t)
		})
	}
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order])
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("FindByID", ctx, "valid-id").Return(&model.Order{ID: "valid-id"}, nil)
				mOrders.On("Delete", ctx, "valid-id", mock.AnythingOfType("*model.OrderDeletedEvent")).Return(nil)
				mCache.On("Del", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name: "repository delete error",
			id:   "repo-fail-id",
			setupMocks: func(mOrders *repoMocks.MockOrderRepository, mCache *cacheMocks.MockCache[model.Order]) {
				mOrders.On("FindByID", ctx, "repo-fail-id").Return(&model.Order{ID: "repo-fail-id"}, nil)
				mOrders.On("Delete", ctx, "repo-fail-id", mock.Anything).Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			mCache := new(cacheMocks.MockCache[model.Order])
			svc := NewOrderService(mOrders, nil, mCache)

			tt.setupMocks(mOrders, mCache)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrOrderNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				assert.NoError(t, err)
			}
			mOrders.AssertExpectations(t)
			mCache.AssertExpectations(t)
		})
	}
}
