package service

import (
	"context"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
)

type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Notes      string
}

type CreateOrderInput struct {
	OrderType models.OrderType
	Items     []OrderItemInput
	Customer  CustomerInfo
	// Mesa is the raw table number; numbers arrive already rendered as text.
	Mesa          string
	Notes         string
	PaymentStatus string
}

type UpdateOrderInput struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerEmail   *string
	DeliveryAddress *string
	Notes           *string
}

type ListFilter struct {
	Status   string
	Type     string
	Mesa     string
	OpenOnly bool
}

type OrderStats struct {
	Total      int64
	Pendente   int64
	Preparando int64
	Pronto     int64
	Entregue   int64
	Cancelado  int64
}

// OrderResult tells the caller whether the request opened a new order or landed on an open comanda.
type OrderResult struct {
	Order  *models.Order
	Merged bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error)
	AddItems(ctx context.Context, id uuid.UUID, items []OrderItemInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]*models.Order, error)
	OrderStats(ctx context.Context) (*OrderStats, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error)
	SetComandaStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	CloseComanda(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ComandasByMesa(ctx context.Context, mesa string) ([]*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
