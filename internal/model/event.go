package model

import "time"

// Event is a domain event destined for the message broker. Events are
// written to the outbox table in the same transaction as the mutation
// that produced them and published asynchronously by the outbox worker.
type Event interface {
	// GetName is the routing key, e.g. "order.created".
	GetName() string
	// GetEntityName selects the exchange, e.g. "order" -> exchange.order.
	GetEntityName() string
}

type CustomerCreatedEvent struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *CustomerCreatedEvent) GetName() string       { return "customer.created" }
func (e *CustomerCreatedEvent) GetEntityName() string { return "customer" }

func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		OccurredAt: time.Now().UTC(),
	}
}

type CustomerDeletedEvent struct {
	CustomerID string    `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *CustomerDeletedEvent) GetName() string       { return "customer.deleted" }
func (e *CustomerDeletedEvent) GetEntityName() string { return "customer" }

func NewCustomerDeletedEvent(customerID string) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{CustomerID: customerID, OccurredAt: time.Now().UTC()}
}

type OrderCreatedEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Product    string    `json:"product"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *OrderCreatedEvent) GetName() string       { return "order.created" }
func (e *OrderCreatedEvent) GetEntityName() string { return "order" }

func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Product:    o.Product,
		Quantity:   o.Quantity,
		OccurredAt: time.Now().UTC(),
	}
}

type OrderUpdatedEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Product    string    `json:"product"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *OrderUpdatedEvent) GetName() string       { return "order.updated" }
func (e *OrderUpdatedEvent) GetEntityName() string { return "order" }

func NewOrderUpdatedEvent(o *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Product:    o.Product,
		Quantity:   o.Quantity,
		OccurredAt: time.Now().UTC(),
	}
}

type OrderDeletedEvent struct {
	OrderID    string    `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *OrderDeletedEvent) GetName() string       { return "order.deleted" }
func (e *OrderDeletedEvent) GetEntityName() string { return "order" }

func NewOrderDeletedEvent(orderID string) *OrderDeletedEvent {
	return &OrderDeletedEvent{OrderID: orderID, OccurredAt: time.Now().UTC()}
}
