package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"orderapi/internal/cache"
	"orderapi/internal/model"
	"orderapi/internal/repository"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductRequired = errors.New("product is required")
	ErrQuantityInvalid = errors.New("quantity must be positive")
)

const orderCacheTTL = 15 * time.Minute

// OrderListResult is the service-level DTO for paginated orders.
type OrderListResult struct {
	Items []model.Order `json:"data"`
	Total int           `json:"total"`
}

// OrderService defines the use cases for handling orders.
type OrderService interface {
	// Create places an order for an existing customer.
	Create(ctx context.Context, customerID, product string, quantity int) (*model.Order, error)

	// List returns orders using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*OrderListResult, error)

	// ListByCustomer returns the orders of one customer; the customer must exist.
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) (*OrderListResult, error)

	// Get returns a single order by its ID, consulting the cache first.
	Get(ctx context.Context, id string) (*model.Order, error)

	// Update replaces an order's customer, product and quantity.
	Update(ctx context.Context, id, customerID, product string, quantity int) (*model.Order, error)

	// Delete removes an order by ID.
	Delete(ctx context.Context, id string) error
}

// orderService is a concrete implementation of OrderService.
type orderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	cache     cache.Cache[model.Order]
}

// NewOrderService constructs a new OrderService.
func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, oc cache.Cache[model.Order]) OrderService {
	return &orderService{orders: orders, customers: customers, cache: oc}
}

func (s *orderService) Create(ctx context.Context, customerID, product string, quantity int) (*model.Order, error) {
	if customerID == "" {
		return nil, ErrIDRequired
	}
	if product == "" {
		return nil, ErrProductRequired
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	// Check the customer up front for a clean not-found; the schema's
	// foreign key still backs this up against races.
	exists, err := s.customers.ExistsByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	now := time.Now().UTC()
	o := &model.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Product:    product,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	stored, err := s.orders.Create(ctx, o, model.NewOrderCreatedEvent(o))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerMissing) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return stored, nil
}

// List returns paginated orders without exposing repository types.
func (s *orderService) List(ctx context.Context, limit, offset int) (*OrderListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.orders.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID string, limit, offset int) (*OrderListResult, error) {
	if customerID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	exists, err := s.customers.ExistsByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	res, err := s.orders.ListByCustomer(ctx, customerID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an order by ID. Cache failures fall back to the database.
func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		logWarn("order_cache_get_failed", err, map[string]any{"order_id": id})
	}
	if cached != nil {
		return cached, nil
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, id, order, orderCacheTTL); err != nil {
		logWarn("order_cache_set_failed", err, map[string]any{"order_id": id})
	}
	return order, nil
}

func (s *orderService) Update(ctx context.Context, id, customerID, product string, quantity int) (*model.Order, error) {
	if id == "" || customerID == "" {
		return nil, ErrIDRequired
	}
	if product == "" {
		return nil, ErrProductRequired
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	o := &model.Order{
		ID:         id,
		CustomerID: customerID,
		Product:    product,
		Quantity:   quantity,
		UpdatedAt:  time.Now().UTC(),
	}
	updated, err := s.orders.Update(ctx, o, model.NewOrderUpdatedEvent(o))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrOrderNotFound
		case errors.Is(err, repository.ErrCustomerMissing):
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, id, updated, orderCacheTTL); err != nil {
		logWarn("order_cache_set_failed", err, map[string]any{"order_id": id})
	}
	return updated, nil
}

// Delete looks the order up first so a missing row surfaces as not found.
func (s *orderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	if _, err := s.orders.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.orders.Delete(ctx, id, model.NewOrderDeletedEvent(id)); err != nil {
		return err
	}

	if err := s.cache.Del(ctx, id); err != nil {
		logWarn("order_cache_del_failed", err, map[string]any{"order_id": id})
	}
	return nil
}
