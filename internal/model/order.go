package model

import "time"

// Order is a purchase placed by a customer. CustomerID references the
// owning Customer; the relation is enforced by the database schema.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Product    string    `json:"product"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrderExport describes a CSV snapshot of all orders written to object
// storage. URL is a presigned download link valid until ExpiresAt.
type OrderExport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrderExportRow is one line of the export: an order joined with the
// owning customer's email. Internal to the export pipeline.
type OrderExportRow struct {
	OrderID       string
	Product       string
	Quantity      int
	CustomerID    string
	CustomerEmail string
	CreatedAt     time.Time
}
