package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"gt=0"`
	Notes      string `json:"notes"`
}

type CreateOrderRequest struct {
	OrderType       string             `json:"order_type" binding:"required,oneof=delivery local comanda"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerEmail   string             `json:"customer_email"`
	DeliveryAddress string             `json:"delivery_address"`
	Notes           string             `json:"notes"`
	PaymentStatus   string             `json:"payment_status"`
	// Mesa may be sent as 5 or "5".
	Mesa json.RawMessage `json:"mesa"`
}

type AddItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	DeliveryAddress *string `json:"delivery_address"`
	Notes           *string `json:"notes"`
}

func (r UpdateOrderRequest) Input() service.UpdateOrderInput {
	return service.UpdateOrderInput{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		DeliveryAddress: r.DeliveryAddress,
		Notes:           r.Notes,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type ComandaStatusRequest struct {
	StatusComanda string `json:"status_comanda" binding:"required"`
}

// MesaText renders the raw mesa value as text. Integral numbers lose any fraction marker so 5.0 reads "5";
// anything unparseable is passed through and rejected by the order rules.
func MesaText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return string(raw)
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return string(raw)
}

func ParseItems(items []OrderItemRequest) ([]service.OrderItemInput, error) {
	out := make([]service.OrderItemInput, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(it.MenuItemID)
		if err != nil {
			return nil, &service.ValidationError{Field: "menu_item_id", Err: service.ErrInvalidID}
		}
		out = append(out, service.OrderItemInput{
			MenuItemID: id,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}
	return out, nil
}

func (r CreateOrderRequest) Input() (service.CreateOrderInput, error) {
	items, err := ParseItems(r.Items)
	if err != nil {
		return service.CreateOrderInput{}, err
	}
	return service.CreateOrderInput{
		OrderType: models.OrderType(r.OrderType),
		Items:     items,
		Customer: service.CustomerInfo{
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Email:   r.CustomerEmail,
			Address: r.DeliveryAddress,
		},
		Mesa:          MesaText(r.Mesa),
		Notes:         r.Notes,
		PaymentStatus: r.PaymentStatus,
	}, nil
}

type OrderItemResponse struct {
	ID         string            `json:"id"`
	OrderID    string            `json:"order_id"`
	MenuItemID string            `json:"menu_item_id"`
	MenuItem   *MenuItemResponse `json:"menu_item"`
	Quantity   int               `json:"quantity"`
	UnitPrice  float64           `json:"unit_price"`
	Subtotal   float64           `json:"subtotal"`
	Notes      string            `json:"notes"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      *string             `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email"`
	OrderType       string              `json:"order_type"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	TotalAmount     float64             `json:"total_amount"`
	DeliveryAddress string              `json:"delivery_address"`
	Notes           string              `json:"notes"`
	IsComanda       bool                `json:"is_comanda"`
	Mesa            *int                `json:"mesa"`
	StatusComanda   *string             `json:"status_comanda"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Items           []OrderItemResponse `json:"items"`
}

func NewOrderResponse(o *models.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	out := &OrderResponse{
		ID:              o.ID.String(),
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		OrderType:       string(o.OrderType),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		TotalAmount:     Money(o.TotalAmountCents),
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		IsComanda:       o.IsComanda,
		Mesa:            o.Mesa,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		out.CustomerID = &id
	}
	if o.StatusComanda != nil {
		st := string(*o.StatusComanda)
		out.StatusComanda = &st
	}
	for i := range o.Items {
		it := &o.Items[i]
		out.Items = append(out.Items, OrderItemResponse{
			ID:         it.ID.String(),
			OrderID:    it.OrderID.String(),
			MenuItemID: it.MenuItemID.String(),
			MenuItem:   NewMenuItemResponse(it.MenuItem),
			Quantity:   it.Quantity,
			UnitPrice:  Money(it.UnitPriceCents),
			Subtotal:   Money(it.SubtotalCents),
			Notes:      it.Notes,
		})
	}
	return out
}

func NewOrderList(orders []*models.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

type OrderStatsResponse struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	PreparingOrders int64 `json:"preparing_orders"`
	ReadyOrders     int64 `json:"ready_orders"`
	DeliveredOrders int64 `json:"delivered_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
}

func NewOrderStatsResponse(s *service.OrderStats) OrderStatsResponse {
	return OrderStatsResponse{
		TotalOrders:     s.Total,
		PendingOrders:   s.Pendente,
		PreparingOrders: s.Preparando,
		ReadyOrders:     s.Pronto,
		DeliveredOrders: s.Entregue,
		CancelledOrders: s.Cancelado,
	}
}
