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
	ErrIDRequired       = errors.New("id is required")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailTaken       = errors.New("email already registered")
)

const customerCacheTTL = 15 * time.Minute

// CustomerListResult is the service-level DTO for paginated customers.
type CustomerListResult struct {
	Items []model.Customer `json:"data"`
	Total int              `json:"total"`
}

// CustomerService defines the use cases for handling customers.
type CustomerService interface {
	// Create registers a new customer. The email must not be in use.
	Create(ctx context.Context, name, email string) (*model.Customer, error)

	// List returns customers using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*CustomerListResult, error)

	// Get returns a single customer by its ID, consulting the cache first.
	Get(ctx context.Context, id string) (*model.Customer, error)

	// Update replaces a customer's name and email.
	Update(ctx context.Context, id, name, email string) (*model.Customer, error)

	// Delete removes a customer; its orders go with it via the schema cascade.
	Delete(ctx context.Context, id string) error
}

// customerService is a concrete implementation of CustomerService.
type customerService struct {
	repo  repository.CustomerRepository
	cache cache.Cache[model.Customer]
}

// NewCustomerService constructs a new CustomerService.
func NewCustomerService(repo repository.CustomerRepository, cc cache.Cache[model.Customer]) CustomerService {
	return &customerService{repo: repo, cache: cc}
}

func (s *customerService) Create(ctx context.Context, name, email string) (*model.Customer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	now := time.Now().UTC()
	c := &model.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, c, model.NewCustomerCreatedEvent(c))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return stored, nil
}

// List returns paginated customers without exposing repository types.
func (s *customerService) List(ctx context.Context, limit, offset int) (*CustomerListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a customer by ID. Cache failures fall back to the database.
func (s *customerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		logWarn("customer_cache_get_failed", err, map[string]any{"customer_id": id})
	}
	if cached != nil {
		return cached, nil
	}

	cust, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, id, cust, customerCacheTTL); err != nil {
		logWarn("customer_cache_set_failed", err, map[string]any{"customer_id": id})
	}
	return cust, nil
}

func (s *customerService) Update(ctx context.Context, id, name, email string) (*model.Customer, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	c := &model.Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		UpdatedAt: time.Now().UTC(),
	}
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrCustomerNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, id, updated, customerCacheTTL); err != nil {
		logWarn("customer_cache_set_failed", err, map[string]any{"customer_id": id})
	}
	return updated, nil
}

// Delete looks the customer up first so a missing row surfaces as not found.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id, model.NewCustomerDeletedEvent(id)); err != nil {
		return err
	}

	if err := s.cache.Del(ctx, id); err != nil {
		logWarn("customer_cache_del_failed", err, map[string]any{"customer_id": id})
	}
	return nil
}
