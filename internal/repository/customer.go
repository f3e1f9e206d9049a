package repository

import (
	"context"

	"orderapi/internal/model"
)

// CustomerRepository defines data access for customers using SQL queries only.
// No business logic here — strictly persistence operations.
type CustomerRepository interface {
	// Create inserts a new customer row and, in the same transaction, an
	// outbox row for evt. The caller provides ID and timestamps.
	// Returns ErrDuplicateEmail on a unique email violation.
	Create(ctx context.Context, c *model.Customer, evt model.Event) (*model.Customer, error)

	// FindByID returns a customer by its ID.
	FindByID(ctx context.Context, id string) (*model.Customer, error)

	// ExistsByID reports whether a customer row with the given ID exists.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// List returns a paginated list of customers and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Customer], error)

	// Update persists name, email and updated_at for an existing row.
	// Returns sql.ErrNoRows when the row does not exist and
	// ErrDuplicateEmail on a unique email violation.
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// Delete removes a customer by ID; owned orders go with it via the
	// schema's ON DELETE CASCADE. An outbox row for evt is written in the
	// same transaction, but only when a row was actually removed.
	// Returns nil if the row did not exist.
	Delete(ctx context.Context, id string, evt model.Event) error
}
