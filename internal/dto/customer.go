package dto

import (
	"time"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/service"
)

type CreateCustomerRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email"`
	DeliveryAddress string `json:"delivery_address"`
}

func (r CreateCustomerRequest) Input() service.CustomerInfo {
	return service.CustomerInfo{
		Name:    r.CustomerName,
		Phone:   r.CustomerPhone,
		Email:   r.CustomerEmail,
		Address: r.DeliveryAddress,
	}
}

type UpdateCustomerRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	DeliveryAddress *string `json:"delivery_address"`
}

func (r UpdateCustomerRequest) Input() service.UpdateCustomerInput {
	return service.UpdateCustomerInput{
		Name:            r.CustomerName,
		Phone:           r.CustomerPhone,
		Email:           r.CustomerEmail,
		DeliveryAddress: r.DeliveryAddress,
	}
}

type CustomerResponse struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email"`
	DeliveryAddress string    `json:"delivery_address"`
	TotalOrders     int64     `json:"total_orders"`
	TotalSpent      float64   `json:"total_spent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCustomerResponse(c *models.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:              c.ID.String(),
		CustomerName:    c.Name,
		CustomerPhone:   c.Phone,
		CustomerEmail:   c.Email,
		DeliveryAddress: c.DeliveryAddress,
		TotalOrders:     c.TotalOrders,
		TotalSpent:      Money(c.TotalSpentCents),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewCustomerList(list []models.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCustomerResponse(&list[i]))
	}
	return out
}

type DirectoryStatsResponse struct {
	TotalUsers      int64               `json:"total_users"`
	UsersWithOrders int64               `json:"users_with_orders"`
	TotalRevenue    float64             `json:"total_revenue"`
	TopSpenders     []*CustomerResponse `json:"top_spenders"`
}

func NewDirectoryStatsResponse(s *service.DirectoryStats) DirectoryStatsResponse {
	return DirectoryStatsResponse{
		TotalUsers:      s.TotalCustomers,
		UsersWithOrders: s.CustomersWithOrder,
		TotalRevenue:    Money(s.TotalRevenueCents),
		TopSpenders:     NewCustomerList(s.TopSpenders),
	}
}
