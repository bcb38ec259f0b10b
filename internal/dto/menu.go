package dto

import (
	"time"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/shopspring/decimal"
)

// Availability flags are untyped on purpose: admin frontends send "true", "1", "yes" as well as booleans.
type CreateMenuItemRequest struct {
	Name                 string           `json:"name" binding:"required"`
	Description          string           `json:"description"`
	Price                *decimal.Decimal `json:"price" binding:"required"`
	Category             string           `json:"category" binding:"required"`
	ImageURL             string           `json:"image_url"`
	AvailableForDelivery any              `json:"available_for_delivery"`
	AvailableForLocal    any              `json:"available_for_local"`
	AvailableForComanda  any              `json:"available_for_comanda"`
}

func (r CreateMenuItemRequest) Input() service.CreateMenuItemInput {
	return service.CreateMenuItemInput{
		Name:                 r.Name,
		Description:          r.Description,
		Price:                r.Price,
		Category:             r.Category,
		ImageURL:             r.ImageURL,
		AvailableForDelivery: r.AvailableForDelivery,
		AvailableForLocal:    r.AvailableForLocal,
		AvailableForComanda:  r.AvailableForComanda,
	}
}

type UpdateMenuItemRequest struct {
	Name                 *string          `json:"name"`
	Description          *string          `json:"description"`
	Price                *decimal.Decimal `json:"price"`
	Category             *string          `json:"category"`
	ImageURL             *string          `json:"image_url"`
	AvailableForDelivery any              `json:"available_for_delivery"`
	AvailableForLocal    any              `json:"available_for_local"`
	AvailableForComanda  any              `json:"available_for_comanda"`
	IsActive             any              `json:"is_active"`
}

func (r UpdateMenuItemRequest) Input() service.UpdateMenuItemInput {
	return service.UpdateMenuItemInput{
		Name:                 r.Name,
		Description:          r.Description,
		Price:                r.Price,
		Category:             r.Category,
		ImageURL:             r.ImageURL,
		AvailableForDelivery: r.AvailableForDelivery,
		AvailableForLocal:    r.AvailableForLocal,
		AvailableForComanda:  r.AvailableForComanda,
		IsActive:             r.IsActive,
	}
}

type MenuItemResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Price                float64   `json:"price"`
	Category             string    `json:"category"`
	ImageURL             string    `json:"image_url"`
	AvailableForDelivery bool      `json:"available_for_delivery"`
	AvailableForLocal    bool      `json:"available_for_local"`
	AvailableForComanda  bool      `json:"available_for_comanda"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func Money(cents int64) float64 {
	return service.CentsToPrice(cents).InexactFloat64()
}

func NewMenuItemResponse(m *models.MenuItem) *MenuItemResponse {
	if m == nil {
		return nil
	}
	return &MenuItemResponse{
		ID:                   m.ID.String(),
		Name:                 m.Name,
		Description:          m.Description,
		Price:                Money(m.PriceCents),
		Category:             m.Category,
		ImageURL:             m.ImageURL,
		AvailableForDelivery: m.AvailableForDelivery,
		AvailableForLocal:    m.AvailableForLocal,
		AvailableForComanda:  m.AvailableForComanda,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func NewMenuItemList(items []models.MenuItem) []*MenuItemResponse {
	out := make([]*MenuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewMenuItemResponse(&items[i]))
	}
	return out
}
