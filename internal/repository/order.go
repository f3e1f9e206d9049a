package repository

import (
	"context"

	"orderapi/internal/model"
)

// OrderRepository defines data access for orders using SQL queries only.
// Mutations write an outbox row for the given event in the same
// transaction, so a committed order change always has its event pending.
type OrderRepository interface {
	// Create inserts a new order row plus the outbox row for evt.
	// Returns ErrCustomerMissing when the referenced customer does not exist.
	Create(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error)

	// FindByID returns an order by its ID.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	// List returns a paginated list of orders and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Order], error)

	// ListByCustomer returns the paginated orders of one customer.
	ListByCustomer(ctx context.Context, customerID string, pq PageQuery) (*PageResult[model.Order], error)

	// Update persists customer_id, product, quantity and updated_at for an
	// existing row, plus the outbox row for evt. Returns sql.ErrNoRows when
	// the row does not exist and ErrCustomerMissing when re-pointed at an
	// absent customer.
	Update(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error)

	// Delete removes an order by ID. The outbox row for evt is written in
	// the same transaction, but only when a row was actually removed.
	// Returns nil if the row did not exist.
	Delete(ctx context.Context, id string, evt model.Event) error

	// ListForExport returns every order joined with the owning customer's
	// email, oldest first, for the CSV export pipeline.
	ListForExport(ctx context.Context) ([]model.OrderExportRow, error)
}
