package repository

import (
	"context"
	"errors"

	"github.com/yasminalves16/restaurante/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderListFilter struct {
	Status     *models.OrderStatus
	Type       *models.OrderType
	Mesa       *int
	OpenOnly   bool
	CustomerID *uuid.UUID
	Limit      int
	Offset     int
}

type StatusCounts struct {
	Total    int64
	ByStatus map[models.OrderStatus]int64
}

type CustomerAggregate struct {
	Orders     int64
	SpentCents int64
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOpenByMesaForUpdate(ctx context.Context, mesa int) (*models.Order, error)
	ListOpenByMesa(ctx context.Context, mesa int) ([]*models.Order, error)
	AddToTotal(ctx context.Context, id uuid.UUID, deltaCents int64) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
	CloseComanda(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
	AggregateForCustomer(ctx context.Context, customerID uuid.UUID) (CustomerAggregate, error)
	ListWithoutCustomer(ctx context.Context) ([]*models.Order, error)
	SetCustomer(ctx context.Context, ids []uuid.UUID, customerID uuid.UUID) (int64, error)
	ReassignCustomer(ctx context.Context, from []uuid.UUID, to uuid.UUID) (int64, error)
	DetachCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

// Items are written by OrderItemRepo so that the header and the lines go through the same code path for
// both fresh orders and tab appends.
func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Select("*").Omit(clause.Associations).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.MenuItem").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

// GetByIDForUpdate locks the order row until the surrounding transaction ends.
func (r *orderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepo) FindOpenByMesaForUpdate(ctx context.Context, mesa int) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("is_comanda = ? AND mesa = ? AND status_comanda = ?", true, mesa, models.ComandaAberta).
		Order("created_at DESC").
		First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepo) ListOpenByMesa(ctx context.Context, mesa int) ([]*models.Order, error) {
	var list []*models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.MenuItem").
		Where("is_comanda = ? AND mesa = ? AND status_comanda = ?", true, mesa, models.ComandaAberta).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) AddToTotal(ctx context.Context, id uuid.UUID, deltaCents int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET total_amount_cents = total_amount_cents + @delta,
		    updated_at = @now
		WHERE id = @id
	`, map[string]any{
		"delta": deltaCents,
		"now":   r.db.NowFunc(),
		"id":    id,
	}).Error
}

func (r *orderRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status).Error
}

// CloseComanda moves an open tab to 'encerrada'. It reports false when the order was not an open tab.
func (r *orderRepo) CloseComanda(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND is_comanda = ? AND status_comanda = ?", id, true, models.ComandaAberta).
		Update("status_comanda", models.ComandaEncerrada)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("order_type = ?", *f.Type)
	}
	if f.Mesa != nil {
		q = q.Where("mesa = ?", *f.Mesa)
	}
	if f.OpenOnly {
		q = q.Where("is_comanda = ? AND status_comanda = ?", true, models.ComandaAberta)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var list []*models.Order
	err := q.Order("created_at DESC").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.MenuItem").
		Find(&list).Error
	return list, total, err
}

func (r *orderRepo) CountByStatus(ctx context.Context) (StatusCounts, error) {
	type row struct {
		Status models.OrderStatus
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	res := StatusCounts{ByStatus: make(map[models.OrderStatus]int64, len(models.OrderStatuses))}
	for _, s := range models.OrderStatuses {
		res.ByStatus[s] = 0
	}
	for _, rw := range rows {
		res.ByStatus[rw.Status] = rw.Cnt
		res.Total += rw.Cnt
	}
	return res, nil
}

func (r *orderRepo) AggregateForCustomer(ctx context.Context, customerID uuid.UUID) (CustomerAggregate, error) {
	var res CustomerAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_amount_cents),0) AS spent_cents").
		Where("customer_id = ?", customerID).
		Scan(&res).Error
	return res, err
}

func (r *orderRepo) ListWithoutCustomer(ctx context.Context) ([]*models.Order, error) {
	var list []*models.Order
	err := r.db.WithContext(ctx).
		Where("customer_id IS NULL").
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) SetCustomer(ctx context.Context, ids []uuid.UUID, customerID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN ?", ids).
		Update("customer_id", customerID)
	return tx.RowsAffected, tx.Error
}

func (r *orderRepo) ReassignCustomer(ctx context.Context, from []uuid.UUID, to uuid.UUID) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id IN ?", from).
		Update("customer_id", to)
	return tx.RowsAffected, tx.Error
}

func (r *orderRepo) DetachCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Update("customer_id", nil)
	return tx.RowsAffected, tx.Error
}

// Delete removes the order; items go with it through the cascade.
func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	return tx.RowsAffected > 0, tx.Error
}
