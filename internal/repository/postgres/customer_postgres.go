package postgres

import (
	"context"
	"database/sql"

	"orderapi/internal/model"
	"orderapi/internal/repository"
)

// CustomerPostgres is a PostgreSQL implementation of repository.CustomerRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CustomerPostgres struct {
	db *sql.DB
}

// NewCustomerPostgres creates a new CustomerPostgres repository.
func NewCustomerPostgres(db *sql.DB) *CustomerPostgres {
	return &CustomerPostgres{db: db}
}

var _ repository.CustomerRepository = (*CustomerPostgres)(nil)

// Create inserts a new customer row and its outbox event in one transaction.
func (r *CustomerPostgres) Create(ctx context.Context, c *model.Customer, evt model.Event) (*model.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, created_at, updated_at
	`
	row := tx.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.CreatedAt,
		c.UpdatedAt,
	)
	var out model.Customer
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isPgError(err, codeUniqueViolation) {
			return nil, repository.ErrDuplicateEmail
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

// FindByID fetches a single customer by its ID.
func (r *CustomerPostgres) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	const q = `
		SELECT id, name, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Customer
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsByID reports whether a customer row exists without loading it.
func (r *CustomerPostgres) ExistsByID(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns customers using LIMIT/OFFSET pagination and a total count.
func (r *CustomerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Customer], error) {
	const qCount = `SELECT COUNT(*) FROM customers`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, email, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Customer]{
		Items: items,
		Total: total,
	}, nil
}

// Update persists new field values for an existing customer row.
// Scanning the RETURNING clause yields sql.ErrNoRows when no row matched.
func (r *CustomerPostgres) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const q = `
		UPDATE customers
		SET name = $2, email = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, name, email, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.UpdatedAt,
	)
	var out model.Customer
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isPgError(err, codeUniqueViolation) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes a customer by ID. Orders cascade at the schema level.
// The outbox event is only written when a row was actually removed, so a
// delete of a missing customer stays a no-op end to end.
func (r *CustomerPostgres) Delete(ctx context.Context, id string, evt model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `DELETE FROM customers WHERE id = $1`
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
