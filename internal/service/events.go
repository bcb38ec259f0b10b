package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	Quantity      int       `json:"quantity"`
	PriceCents    int64     `json:"price_cents"`
	SubtotalCents int64     `json:"subtotal_cents"`
}

type OrderCreatedEvent struct {
	OrderID    uuid.UUID        `json:"order_id"`
	CustomerID *uuid.UUID       `json:"customer_id,omitempty"`
	OrderType  string           `json:"order_type"`
	Mesa       *int             `json:"mesa,omitempty"`
	Items      []OrderItemEvent `json:"items"`
	TotalCents int64            `json:"total_cents"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ComandaItemsAddedEvent is emitted when items are appended to an already open tab.
type ComandaItemsAddedEvent struct {
	OrderID    uuid.UUID        `json:"order_id"`
	Mesa       int              `json:"mesa"`
	Items      []OrderItemEvent `json:"items"`
	AddedCents int64            `json:"added_cents"`
	TotalCents int64            `json:"total_cents"`
	AddedAt    time.Time        `json:"added_at"`
}

type OrderStatusChangedEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	Status        string    `json:"status,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	StatusComanda string    `json:"status_comanda,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishComandaItemsAdded(ctx context.Context, e ComandaItemsAddedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
