package repository

import (
	"context"
	"time"
)

// OutboxEntry is one pending event row awaiting publication.
type OutboxEntry struct {
	ID         string
	EventName  string
	EntityName string
	Payload    []byte
	CreatedAt  time.Time
}

// OutboxRepository drains the transactional outbox. Rows are inserted by
// the customer/order repositories inside their own transactions; the
// worker fetches and deletes them after a successful publish.
type OutboxRepository interface {
	// FetchPending returns up to limit entries, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxEntry, error)

	// Delete removes a published entry by ID.
	Delete(ctx context.Context, id string) error
}
