package maintenance

import (
	"context"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Report struct {
	CustomersRecomputed int64 `json:"customers_recomputed"`
	OrdersLinked        int64 `json:"orders_linked"`
	OrdersSkipped       int64 `json:"orders_skipped"`
	DuplicatesMerged    int64 `json:"duplicates_merged"`
}

type Service struct {
	repo      *repository.Repository
	customers service.CustomerService
	log       *zap.Logger
}

func NewService(repo *repository.Repository, customers service.CustomerService, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		log:       log,
	}
}

// RecomputeAllStats rewrites every customer's totals from the orders table. Running it twice changes nothing.
func (s *Service) RecomputeAllStats(ctx context.Context) (int64, error) {
	n, err := s.repo.Customers.RecomputeAllStats(ctx)
	if err != nil {
		s.log.Error("failed to recompute customer stats", zap.Error(err))
		return 0, err
	}
	s.log.Info("customer stats recomputed", zap.Int64("customers", n))
	return n, nil
}

// BackfillOrderCustomers links orders written without a customer reference to the customer owning their
// phone, creating that customer when needed. Orders without a phone are left alone.
func (s *Service) BackfillOrderCustomers(ctx context.Context) (linked, skipped int64, err error) {
	orders, err := s.repo.Orders.ListWithoutCustomer(ctx)
	if err != nil {
		s.log.Error("failed to list orders without customer", zap.Error(err))
		return 0, 0, err
	}
	if len(orders) == 0 {
		return 0, 0, nil
	}

	byPhone := map[string][]*models.Order{}
	var phones []string
	for _, o := range orders {
		phone := service.NormalizePhone(o.CustomerPhone)
		if phone == "" {
			skipped++
			continue
		}
		if _, seen := byPhone[phone]; !seen {
			phones = append(phones, phone)
		}
		byPhone[phone] = append(byPhone[phone], o)
	}

	for _, phone := range phones {
		group := byPhone[phone]
		// the newest order carries the freshest contact data
		latest := group[len(group)-1]
		c, err := s.customers.FindOrCreate(ctx, service.CustomerInfo{
			Name:    latest.CustomerName,
			Phone:   phone,
			Email:   latest.CustomerEmail,
			Address: latest.DeliveryAddress,
		})
		if err != nil {
			s.log.Error("failed to resolve customer for backfill", zap.String("phone", phone), zap.Error(err))
			return linked, skipped, err
		}

		ids := make([]uuid.UUID, 0, len(group))
		for _, o := range group {
			ids = append(ids, o.ID)
		}
		n, err := s.repo.Orders.SetCustomer(ctx, ids, c.ID)
		if err != nil {
			s.log.Error("failed to link orders", zap.String("phone", phone), zap.Error(err))
			return linked, skipped, err
		}
		linked += n
	}

	if skipped > 0 {
		s.log.Warn("orders without phone were not linked", zap.Int64("count", skipped))
	}
	s.log.Info("orders linked to customers", zap.Int64("count", linked))
	return linked, skipped, nil
}

// DedupePhones collapses customers sharing a phone into the most recently created one and re-points the
// orders of the others at it. It is meant for databases created before the unique phone index.
func (s *Service) DedupePhones(ctx context.Context) (int64, error) {
	phones, err := s.repo.Customers.DuplicatePhones(ctx)
	if err != nil {
		s.log.Error("failed to find duplicate phones", zap.Error(err))
		return 0, err
	}

	var merged int64
	for _, phone := range phones {
		err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			list, err := tx.Customers.ListByPhone(ctx, phone)
			if err != nil {
				return err
			}
			if len(list) < 2 {
				return nil
			}
			keep := list[0]

			drop := make([]uuid.UUID, 0, len(list)-1)
			for _, c := range list[1:] {
				drop = append(drop, c.ID)
			}
			if _, err := tx.Orders.ReassignCustomer(ctx, drop, keep.ID); err != nil {
				return err
			}
			for _, id := range drop {
				if _, err := tx.Customers.Delete(ctx, id); err != nil {
					return err
				}
			}
			if err := tx.Customers.RecomputeStats(ctx, keep.ID); err != nil {
				return err
			}
			merged += int64(len(drop))
			return nil
		})
		if err != nil {
			s.log.Error("failed to merge duplicate customers", zap.String("phone", phone), zap.Error(err))
			return merged, err
		}
	}

	if merged > 0 {
		s.log.Info("duplicate customers merged", zap.Int64("count", merged), zap.Int("phones", len(phones)))
	}
	return merged, nil
}

// RunAll dedupes, backfills, then recomputes, so that the final stats see every link the first two made.
func (s *Service) RunAll(ctx context.Context) (*Report, error) {
	s.log.Info("starting full maintenance")
	rep := &Report{}

	merged, err := s.DedupePhones(ctx)
	if err != nil {
		return nil, err
	}
	rep.DuplicatesMerged = merged

	linked, skipped, err := s.BackfillOrderCustomers(ctx)
	if err != nil {
		return nil, err
	}
	rep.OrdersLinked = linked
	rep.OrdersSkipped = skipped

	n, err := s.RecomputeAllStats(ctx)
	if err != nil {
		return nil, err
	}
	rep.CustomersRecomputed = n

	s.log.Info("full maintenance completed")
	return rep, nil
}
