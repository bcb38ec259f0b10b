package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yasminalves16/restaurante/internal/metrics"
	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type menuService struct {
	repo  *repository.Repository
	cache MenuCache
	log   *zap.Logger
}

// NewMenuService builds the catalog. cache may be nil.
func NewMenuService(repo *repository.Repository, cache MenuCache, log *zap.Logger) MenuService {
	if log == nil {
		log = zap.NewNop()
	}
	return &menuService{repo: repo, cache: cache, log: log}
}

func MenuCacheKey(channel models.OrderType, category string) string {
	return "menu:" + string(channel) + ":" + category
}

func parseChannel(channel string) (models.OrderType, error) {
	if channel == "" {
		return models.OrderTypeLocal, nil
	}
	t := models.OrderType(strings.ToLower(channel))
	if !t.Valid() {
		return "", invalid("type", ErrInvalidOrderType)
	}
	return t, nil
}

func (s *menuService) ListMenu(ctx context.Context, channel, category string) ([]models.MenuItem, error) {
	ch, err := parseChannel(channel)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	key := MenuCacheKey(ch, category)

	if s.cache != nil {
		data, ok, err := s.cache.GetMenu(ctx, key)
		switch {
		case err != nil:
			s.log.Warn("menu cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			var items []models.MenuItem
			if err := json.Unmarshal(data, &items); err == nil {
				metrics.MenuCacheLookups.WithLabelValues("hit").Inc()
				return items, nil
			}
		}
		metrics.MenuCacheLookups.WithLabelValues("miss").Inc()
	}

	items, err := s.repo.MenuItems.List(ctx, repository.MenuListFilter{
		Channel:    &ch,
		Category:   category,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.cache.SetMenu(ctx, key, data); err != nil {
				s.log.Warn("menu cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return items, nil
}

func (s *menuService) ListAllItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.MenuItems.List(ctx, repository.MenuListFilter{})
}

func (s *menuService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.MenuItems.Categories(ctx)
}

func (s *menuService) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	m, err := s.repo.MenuItems.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMenuItemNotFound
	}
	return m, nil
}

func flagOrDefault(v any, def bool) bool {
	if v == nil {
		return def
	}
	return ParseTruthy(v)
}

func (s *menuService) CreateItem(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", ErrNameRequired)
	}
	if in.Price == nil {
		return nil, invalid("price", ErrPriceRequired)
	}
	if in.Price.IsNegative() {
		return nil, invalid("price", ErrPriceNegative)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, invalid("category", ErrCategoryRequired)
	}

	m := &models.MenuItem{
		Name:                 name,
		Description:          in.Description,
		PriceCents:           PriceToCents(*in.Price),
		Category:             category,
		ImageURL:             in.ImageURL,
		AvailableForDelivery: flagOrDefault(in.AvailableForDelivery, true),
		AvailableForLocal:    flagOrDefault(in.AvailableForLocal, true),
		AvailableForComanda:  flagOrDefault(in.AvailableForComanda, true),
		IsActive:             true,
	}
	if err := s.repo.MenuItems.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return m, nil
}

func (s *menuService) UpdateItem(ctx context.Context, id uuid.UUID, in UpdateMenuItemInput) (*models.MenuItem, error) {
	upd := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", ErrNameRequired)
		}
		upd["name"] = name
	}
	if in.Description != nil {
		upd["description"] = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, invalid("price", ErrPriceNegative)
		}
		upd["price_cents"] = PriceToCents(*in.Price)
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, invalid("category", ErrCategoryRequired)
		}
		upd["category"] = category
	}
	if in.ImageURL != nil {
		upd["image_url"] = *in.ImageURL
	}
	if in.AvailableForDelivery != nil {
		upd["available_for_delivery"] = ParseTruthy(in.AvailableForDelivery)
	}
	if in.AvailableForLocal != nil {
		upd["available_for_local"] = ParseTruthy(in.AvailableForLocal)
	}
	if in.AvailableForComanda != nil {
		upd["available_for_comanda"] = ParseTruthy(in.AvailableForComanda)
	}
	if in.IsActive != nil {
		upd["is_active"] = ParseTruthy(in.IsActive)
	}

	var out *models.MenuItem
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		m, err := tx.MenuItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrMenuItemNotFound
		}
		if err := tx.MenuItems.UpdateFields(ctx, id, upd); err != nil {
			return err
		}
		out, err = tx.MenuItems.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return out, nil
}

// DeleteItem only deactivates the item; past order lines keep pointing at it.
func (s *menuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		m, err := tx.MenuItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrMenuItemNotFound
		}
		return tx.MenuItems.UpdateFields(ctx, id, map[string]any{"is_active": false})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *menuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(ctx); err != nil {
		s.log.Warn("menu cache invalidation failed", zap.Error(err))
	}
}
