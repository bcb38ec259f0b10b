package service

import (
	"context"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Availability flags and IsActive are left untyped so that "yes", "1" and real booleans all work. nil means
// the field was not sent.
type CreateMenuItemInput struct {
	Name                 string
	Description          string
	Price                *decimal.Decimal
	Category             string
	ImageURL             string
	AvailableForDelivery any
	AvailableForLocal    any
	AvailableForComanda  any
}

type UpdateMenuItemInput struct {
	Name                 *string
	Description          *string
	Price                *decimal.Decimal
	Category             *string
	ImageURL             *string
	AvailableForDelivery any
	AvailableForLocal    any
	AvailableForComanda  any
	IsActive             any
}

type MenuService interface {
	ListMenu(ctx context.Context, channel, category string) ([]models.MenuItem, error)
	ListAllItems(ctx context.Context) ([]models.MenuItem, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, in UpdateMenuItemInput) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
