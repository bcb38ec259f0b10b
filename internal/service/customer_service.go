package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topSpendersLimit = 5

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &customerService{repo: repo, log: log}
}

func (s *customerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, nil
	}
	return s.repo.Customers.GetByPhone(ctx, phone)
}

func (s *customerService) FindOrCreate(ctx context.Context, in CustomerInfo) (*models.Customer, error) {
	var out *models.Customer
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		c, err := findOrCreateCustomer(ctx, tx, in)
		out = c
		return err
	})
	return out, err
}

// findOrCreateCustomer resolves the customer that owns in.Phone inside the caller's transaction. An existing
// record only ever gains a new email or address; the first known name stays.
func findOrCreateCustomer(ctx context.Context, tx *repository.Repository, in CustomerInfo) (*models.Customer, error) {
	phone := NormalizePhone(in.Phone)
	if phone == "" {
		return nil, invalid("phone", ErrPhoneRequired)
	}
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)

	c, err := tx.Customers.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if c == nil {
		nc := &models.Customer{
			Phone:           phone,
			Name:            strings.TrimSpace(in.Name),
			Email:           email,
			DeliveryAddress: address,
		}
		inserted, err := tx.Customers.InsertIfAbsent(ctx, nc)
		if err != nil {
			return nil, err
		}
		if inserted {
			return nc, nil
		}

		// a concurrent request created the same phone first
		c, err = tx.Customers.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("customer with phone %q neither inserted nor found", phone)
		}
	}

	upd := map[string]any{}
	if email != "" && email != c.Email {
		upd["email"] = email
		c.Email = email
	}
	if address != "" && address != c.DeliveryAddress {
		upd["delivery_address"] = address
		c.DeliveryAddress = address
	}
	if err := tx.Customers.UpdateFields(ctx, c.ID, upd); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, in CustomerInfo) (*models.Customer, error) {
	phone := NormalizePhone(in.Phone)
	if phone == "" {
		return nil, invalid("phone", ErrPhoneRequired)
	}

	c := &models.Customer{
		Phone:           phone,
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		DeliveryAddress: strings.TrimSpace(in.Address),
	}
	err := s.repo.Customers.Create(ctx, c)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrPhoneTaken
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	c, err := s.repo.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (s *customerService) ListCustomers(ctx context.Context, f ListCustomersFilter) ([]models.Customer, error) {
	return s.repo.Customers.List(ctx, repository.CustomerListFilter{
		Search: f.Search,
		SortBy: repository.CustomerSort(strings.ToLower(f.SortBy)),
		Asc:    strings.EqualFold(f.SortOrder, "asc"),
	})
}

func (s *customerService) CustomerOrders(ctx context.Context, id uuid.UUID) ([]*models.Order, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	orders, _, err := s.repo.Orders.List(ctx, repository.OrderListFilter{CustomerID: &id})
	return orders, err
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, in UpdateCustomerInput) (*models.Customer, error) {
	var out *models.Customer
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		c, err := tx.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCustomerNotFound
		}

		upd := map[string]any{}
		if in.Name != nil {
			upd["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			upd["email"] = strings.TrimSpace(*in.Email)
		}
		if in.DeliveryAddress != nil {
			upd["delivery_address"] = strings.TrimSpace(*in.DeliveryAddress)
		}
		if in.Phone != nil {
			phone := NormalizePhone(*in.Phone)
			if phone == "" {
				return invalid("phone", ErrPhoneRequired)
			}
			if phone != c.Phone {
				other, err := tx.Customers.GetByPhone(ctx, phone)
				if err != nil {
					return err
				}
				if other != nil && other.ID != c.ID {
					return ErrPhoneTaken
				}
				upd["phone"] = phone
			}
		}

		if err := tx.Customers.UpdateFields(ctx, id, upd); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPhoneTaken
			}
			return err
		}
		out, err = tx.Customers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCustomer drops the profile. Orders keep their snapshot of name and phone and lose the reference.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Orders.DetachCustomer(ctx, id); err != nil {
			return err
		}
		ok, err := tx.Customers.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCustomerNotFound
		}
		s.log.Info("customer deleted", zap.String("customer_id", id.String()))
		return nil
	})
}

func (s *customerService) RecomputeStats(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var out *models.Customer
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		c, err := tx.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCustomerNotFound
		}
		if err := tx.Customers.RecomputeStats(ctx, id); err != nil {
			return err
		}
		out, err = tx.Customers.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (s *customerService) DirectoryStats(ctx context.Context) (*DirectoryStats, error) {
	totals, err := s.repo.Customers.Totals(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.Customers.TopSpenders(ctx, topSpendersLimit)
	if err != nil {
		return nil, err
	}
	return &DirectoryStats{
		TotalCustomers:     totals.TotalCustomers,
		CustomersWithOrder: totals.CustomersWithOrder,
		TotalRevenueCents:  totals.TotalRevenueCents,
		TopSpenders:        top,
	}, nil
}
