package model

import "time"

// Customer is a registered buyer. It is a pure domain model with no
// database-specific dependencies or tags, so it can be shared across
// layers (HTTP, service, repository) without coupling to persistence.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
