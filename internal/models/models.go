package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderType doubles as the menu availability channel.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeLocal    OrderType = "local"
	OrderTypeComanda  OrderType = "comanda"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDelivery, OrderTypeLocal, OrderTypeComanda:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPendente   OrderStatus = "pendente"
	OrderStatusPreparando OrderStatus = "preparando"
	OrderStatusPronto     OrderStatus = "pronto"
	OrderStatusEntregue   OrderStatus = "entregue"
	OrderStatusCancelado  OrderStatus = "cancelado"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPendente,
	OrderStatusPreparando,
	OrderStatusPronto,
	OrderStatusEntregue,
	OrderStatusCancelado,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPago    PaymentStatus = "pago"
	PaymentStatusNaoPago PaymentStatus = "nao_pago"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPago || s == PaymentStatusNaoPago
}

type ComandaStatus string

const (
	ComandaAberta    ComandaStatus = "aberta"
	ComandaEncerrada ComandaStatus = "encerrada"
)

func (s ComandaStatus) Valid() bool {
	return s == ComandaAberta || s == ComandaEncerrada
}

type MenuItem struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"type:text;not null"`
	Description          string    `gorm:"type:text"`
	PriceCents           int64     `gorm:"not null;default:0"`
	Category             string    `gorm:"type:text;not null;index"`
	ImageURL             string    `gorm:"type:text"`
	AvailableForDelivery bool      `gorm:"not null"`
	AvailableForLocal    bool      `gorm:"not null"`
	AvailableForComanda  bool      `gorm:"not null"`
	IsActive             bool      `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (MenuItem) TableName() string { return "menu_items" }

func (m *MenuItem) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AvailableFor reports whether the item may be ordered through the given channel.
func (m *MenuItem) AvailableFor(channel OrderType) bool {
	if !m.IsActive {
		return false
	}
	switch channel {
	case OrderTypeDelivery:
		return m.AvailableForDelivery
	case OrderTypeLocal:
		return m.AvailableForLocal
	case OrderTypeComanda:
		return m.AvailableForComanda
	}
	return false
}

// Customer is identified by phone; the name is descriptive only.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone           string    `gorm:"type:text;not null"` // partial UNIQUE, see migrate
	Name            string    `gorm:"type:text"`
	Email           string    `gorm:"type:text"`
	DeliveryAddress string    `gorm:"type:text"`
	TotalOrders     int64     `gorm:"not null;default:0"`
	TotalSpentCents int64     `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	// customer snapshot at order time
	CustomerName  string `gorm:"type:text"`
	CustomerPhone string `gorm:"type:text"`
	CustomerEmail string `gorm:"type:text"`

	OrderType        OrderType     `gorm:"type:text;not null;index"`
	Status           OrderStatus   `gorm:"type:text;not null;default:'pendente';index"`
	PaymentStatus    PaymentStatus `gorm:"type:text;not null;default:'nao_pago'"`
	TotalAmountCents int64         `gorm:"not null;default:0"`
	DeliveryAddress  string        `gorm:"type:text"`
	Notes            string        `gorm:"type:text"`

	IsComanda     bool           `gorm:"not null;default:false"`
	Mesa          *int           `gorm:"index"`
	StatusComanda *ComandaStatus `gorm:"type:text"` // partial UNIQUE(mesa) for 'aberta', see migrate

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsOpenComanda reports whether the order is a table tab still accepting items.
func (o *Order) IsOpenComanda() bool {
	return o.IsComanda && o.StatusComanda != nil && *o.StatusComanda == ComandaAberta
}

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity       int       `gorm:"type:int;not null"` // CHECK in migrate
	UnitPriceCents int64     `gorm:"not null"`
	SubtotalCents  int64     `gorm:"not null"`
	Notes          string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
