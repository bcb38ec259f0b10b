package service

import (
	"context"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
)

type CustomerInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type UpdateCustomerInput struct {
	Name            *string
	Phone           *string
	Email           *string
	DeliveryAddress *string
}

type ListCustomersFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}

type DirectoryStats struct {
	TotalCustomers     int64
	CustomersWithOrder int64
	TotalRevenueCents  int64
	TopSpenders        []models.Customer
}

type CustomerService interface {
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindOrCreate(ctx context.Context, in CustomerInfo) (*models.Customer, error)
	CreateCustomer(ctx context.Context, in CustomerInfo) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context, f ListCustomersFilter) ([]models.Customer, error)
	CustomerOrders(ctx context.Context, id uuid.UUID) ([]*models.Order, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, in UpdateCustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	RecomputeStats(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	DirectoryStats(ctx context.Context) (*DirectoryStats, error)
}
