package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerSort string

const (
	CustomerSortName        CustomerSort = "name"
	CustomerSortTotalOrders CustomerSort = "total_orders"
	CustomerSortTotalSpent  CustomerSort = "total_spent"
	CustomerSortCreatedAt   CustomerSort = "created_at"
)

var customerSortColumns = map[CustomerSort]string{
	CustomerSortName:        "name",
	CustomerSortTotalOrders: "total_orders",
	CustomerSortTotalSpent:  "total_spent_cents",
	CustomerSortCreatedAt:   "created_at",
}

type CustomerListFilter struct {
	Search string
	SortBy CustomerSort
	Asc    bool
}

type DirectoryTotals struct {
	TotalCustomers     int64
	CustomersWithOrder int64
	TotalRevenueCents  int64
}

type CustomerRepo interface {
	Create(ctx context.Context, c *models.Customer) error
	// InsertIfAbsent returns false when another row already owns the phone.
	InsertIfAbsent(ctx context.Context, c *models.Customer) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Customer, error)
	DuplicatePhones(ctx context.Context) ([]string, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	AddStats(ctx context.Context, id uuid.UUID, ordersDelta, spentDelta int64) error
	RecomputeStats(ctx context.Context, id uuid.UUID) error
	RecomputeAllStats(ctx context.Context) (int64, error)
	List(ctx context.Context, f CustomerListFilter) ([]models.Customer, error)
	Totals(ctx context.Context) (DirectoryTotals, error)
	TopSpenders(ctx context.Context, limit int) ([]models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) CustomerRepo { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) InsertIfAbsent(ctx context.Context, c *models.Customer) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(c)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if phone == "" {
		return nil, nil
	}
	var c models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPhone returns every row for the phone, newest first. More than one only exists in data written
// before the unique index.
func (r *customerRepo) ListByPhone(ctx context.Context, phone string) ([]models.Customer, error) {
	var list []models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *customerRepo) DuplicatePhones(ctx context.Context) ([]string, error) {
	var phones []string
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select("phone").
		Where("phone <> ''").
		Group("phone").
		Having("COUNT(*) > 1").
		Order("phone ASC").
		Pluck("phone", &phones).Error
	return phones, err
}

func (r *customerRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *customerRepo) AddStats(ctx context.Context, id uuid.UUID, ordersDelta, spentDelta int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE customers
		SET total_orders = total_orders + @orders,
		    total_spent_cents = total_spent_cents + @spent,
		    updated_at = @now
		WHERE id = @id
	`, map[string]any{
		"orders": ordersDelta,
		"spent":  spentDelta,
		"now":    r.db.NowFunc(),
		"id":     id,
	}).Error
}

const recomputeStatsSQL = `
	UPDATE customers
	SET total_orders = (SELECT COUNT(*) FROM orders o WHERE o.customer_id = customers.id),
	    total_spent_cents = (SELECT COALESCE(SUM(o.total_amount_cents), 0) FROM orders o WHERE o.customer_id = customers.id)
`

func (r *customerRepo) RecomputeStats(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(recomputeStatsSQL+" WHERE id = ?", id).Error
}

func (r *customerRepo) RecomputeAllStats(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).Exec(recomputeStatsSQL)
	return tx.RowsAffected, tx.Error
}

func (r *customerRepo) List(ctx context.Context, f CustomerListFilter) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Model(&models.Customer{})

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ? OR LOWER(delivery_address) LIKE ?",
			like, like, like, like,
		)
	}

	col, ok := customerSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: !f.Asc})

	var list []models.Customer
	err := q.Find(&list).Error
	return list, err
}

func (r *customerRepo) Totals(ctx context.Context) (DirectoryTotals, error) {
	var res DirectoryTotals
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select(`COUNT(*) AS total_customers,
			COALESCE(SUM(CASE WHEN total_orders > 0 THEN 1 ELSE 0 END), 0) AS customers_with_order,
			COALESCE(SUM(total_spent_cents), 0) AS total_revenue_cents`).
		Scan(&res).Error
	return res, err
}

func (r *customerRepo) TopSpenders(ctx context.Context, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = 5
	}
	var list []models.Customer
	err := r.db.WithContext(ctx).
		Where("total_orders > 0").
		Order("total_spent_cents DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	return tx.RowsAffected > 0, tx.Error
}
