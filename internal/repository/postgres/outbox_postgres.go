package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"orderapi/internal/model"
	"orderapi/internal/repository"
)

// OutboxPostgres reads and trims the outbox_events table that the
// customer and order repositories append to inside their transactions.
type OutboxPostgres struct {
	db *sql.DB
}

// NewOutboxPostgres creates a new OutboxPostgres repository.
func NewOutboxPostgres(db *sql.DB) *OutboxPostgres {
	return &OutboxPostgres{db: db}
}

var _ repository.OutboxRepository = (*OutboxPostgres)(nil)

// FetchPending returns up to limit undelivered events, oldest first.
func (r *OutboxPostgres) FetchPending(ctx context.Context, limit int) ([]repository.OutboxEntry, error) {
	const q = `
		SELECT id, event_name, entity_name, payload, created_at
		FROM outbox_events
		ORDER BY created_at, id
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]repository.OutboxEntry, 0)
	for rows.Next() {
		var e repository.OutboxEntry
		if err := rows.Scan(
			&e.ID,
			&e.EventName,
			&e.EntityName,
			&e.Payload,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a delivered event by ID.
func (r *OutboxPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM outbox_events WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// insertOutbox appends the serialized event to outbox_events within the
// caller's transaction so the event commits or rolls back with the row
// change it describes.
func insertOutbox(ctx context.Context, tx *sql.Tx, evt model.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	const q = `INSERT INTO outbox_events (event_name, entity_name, payload) VALUES ($1, $2, $3)`
	_, err = tx.ExecContext(ctx, q, evt.GetName(), evt.GetEntityName(), payload)
	return err
}
