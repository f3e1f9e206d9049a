package postgres

import (
	"context"
	"database/sql"

	"orderapi/internal/model"
	"orderapi/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
// Mutations run in a transaction together with their outbox event row.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

// Create inserts a new order row and its outbox event in one transaction.
// A foreign key violation on customer_id is reported as ErrCustomerMissing.
func (r *OrderPostgres) Create(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO orders (id, customer_id, product, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, customer_id, product, quantity, created_at, updated_at
	`
	row := tx.QueryRowContext(ctx, q,
		o.ID,
		o.CustomerID,
		o.Product,
		o.Quantity,
		o.CreatedAt,
		o.UpdatedAt,
	)
	var out model.Order
	if err := row.Scan(
		&out.ID,
		&out.CustomerID,
		&out.Product,
		&out.Quantity,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return nil, repository.ErrCustomerMissing
		}
		return nil, err
	}

	if err := insertOutbox(ctx, tx, evt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single order by its ID.
func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const q = `
		SELECT id, customer_id, product, quantity, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var o model.Order
	if err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.Product,
		&o.Quantity,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders using LIMIT/OFFSET pagination and a total count.
func (r *OrderPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `SELECT COUNT(*) FROM orders`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, customer_id, product, quantity, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{
		Items: items,
		Total: total,
	}, nil
}

// ListByCustomer returns the paginated orders owned by one customer.
func (r *OrderPostgres) ListByCustomer(ctx context.Context, customerID string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `SELECT COUNT(*) FROM orders WHERE customer_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, customerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, customer_id, product, quantity, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, customerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{
		Items: items,
		Total: total,
	}, nil
}

// Update persists new field values for an existing order row plus its
// outbox event. Scanning RETURNING yields sql.ErrNoRows when no row matched.
func (r *OrderPostgres) Update(ctx context.Context, o *model.Order, evt model.Event) (*model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE orders
		SET customer_id = $2, product = $3, quantity = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, customer_id, product, quantity, created_at, updated_at
	`
	row := tx.QueryRowContext(ctx, q,
		o.ID,
		o.CustomerID,
		o.Product,
		o.Quantity,
		o.UpdatedAt,
	)
	var out model.Order
	if err := row.Scan(
		&out.ID,
		&out.CustomerID,
		&out.Product,
		&out.Quantity,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return nil, repository.ErrCustomerMissing
		}
		return nil, err
	}

	if err := insertOutbox(ctx, tx, evt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an order by ID. The outbox event is only written when a
// row was actually removed. Returns nil if the row did not exist.
func (r *OrderPostgres) Delete(ctx context.Context, id string, evt model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `DELETE FROM orders WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		if err := insertOutbox(ctx, tx, evt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListForExport streams every order joined with the owning customer's
// email, oldest first.
func (r *OrderPostgres) ListForExport(ctx context.Context) ([]model.OrderExportRow, error) {
	const q = `
		SELECT o.id, o.product, o.quantity, o.customer_id, c.email, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at, o.id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderExportRow, 0)
	for rows.Next() {
		var row model.OrderExportRow
		if err := rows.Scan(
			&row.OrderID,
			&row.Product,
			&row.Quantity,
			&row.CustomerID,
			&row.CustomerEmail,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrders(rows *sql.Rows) ([]model.Order, error) {
	items := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.Product,
			&o.Quantity,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
