package repository

import (
	"context"
	"errors"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuListFilter struct {
	Channel    *models.OrderType
	Category   string
	OnlyActive bool
}

type MenuItemRepo interface {
	Create(ctx context.Context, m *models.MenuItem) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
	List(ctx context.Context, f MenuListFilter) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type menuItemRepo struct{ db *gorm.DB }

func NewMenuItemRepo(db *gorm.DB) MenuItemRepo { return &menuItemRepo{db: db} }

func (r *menuItemRepo) Create(ctx context.Context, m *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuItemRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *menuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var m models.MenuItem
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuItemRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	var list []models.MenuItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *menuItemRepo) List(ctx context.Context, f MenuListFilter) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Model(&models.MenuItem{})

	if f.OnlyActive {
		q = q.Where("is_active = ?", true)
	}

	if f.Channel != nil {
		switch *f.Channel {
		case models.OrderTypeDelivery:
			q = q.Where("available_for_delivery = ?", true)
		case models.OrderTypeComanda:
			q = q.Where("available_for_comanda = ?", true)
		default:
			q = q.Where("available_for_local = ?", true)
		}
	}

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var list []models.MenuItem
	err := q.Order("category ASC").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *menuItemRepo) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *menuItemRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&cnt).Error
	return cnt, err
}
