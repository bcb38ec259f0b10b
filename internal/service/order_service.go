package service

import (
	"context"
	"strings"
	"time"

	"github.com/yasminalves16/restaurante/internal/metrics"
	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderOptions struct {
	InvalidMesa InvalidMesaPolicy
}

type orderService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	opts   OrderOptions
	now    func() time.Time
}

// NewOrderService builds the order core. events may be nil.
func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger, opts OrderOptions) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.InvalidMesa == "" {
		opts.InvalidMesa = MesaPolicyReject
	}
	return &orderService{
		repo:   repo,
		events: events,
		log:    log,
		opts:   opts,
		now:    time.Now,
	}
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return invalid("items", ErrEmptyItems)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return invalid("quantity", ErrQuantityInvalid)
		}
		if it.MenuItemID == uuid.Nil {
			return invalid("menu_item_id", ErrInvalidID)
		}
	}
	return nil
}

// priceLines checks every requested item against the catalog for the channel and snapshots its current
// price. It runs inside the order transaction.
func priceLines(ctx context.Context, tx *repository.Repository, channel models.OrderType, items []OrderItemInput) ([]models.OrderItem, int64, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}
	found, err := tx.MenuItems.BatchGetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]*models.MenuItem, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	lines := make([]models.OrderItem, 0, len(items))
	var total int64
	for _, it := range items {
		m, ok := byID[it.MenuItemID]
		if !ok {
			return nil, 0, ErrMenuItemNotFound
		}
		if !m.IsActive {
			return nil, 0, invalid("items", ErrItemInactive)
		}
		if !m.AvailableFor(channel) {
			return nil, 0, invalid("items", ErrItemUnavailable)
		}

		sub := int64(it.Quantity) * m.PriceCents
		total += sub
		lines = append(lines, models.OrderItem{
			MenuItemID:     m.ID,
			Quantity:       it.Quantity,
			UnitPriceCents: m.PriceCents,
			SubtotalCents:  sub,
			Notes:          it.Notes,
		})
	}
	return lines, total, nil
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	if !in.OrderType.Valid() {
		return nil, invalid("order_type", ErrInvalidOrderType)
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	payment := models.PaymentStatusNaoPago
	if in.PaymentStatus != "" {
		payment = models.PaymentStatus(in.PaymentStatus)
		if !payment.Valid() {
			return nil, invalid("payment_status", ErrInvalidPayment)
		}
	}

	channel, mesa, err := s.resolveChannel(&in)
	if err != nil {
		return nil, err
	}

	info := in.Customer
	switch {
	case channel == models.OrderTypeComanda:
		info = comandaCustomer(mesa, info)
	case in.OrderType == models.OrderTypeComanda:
		// degraded table order, customer data stays optional
	case strings.TrimSpace(info.Name) == "" && NormalizePhone(info.Phone) == "":
		return nil, invalid("customer", ErrCustomerRequired)
	}

	var (
		res   *OrderResult
		lines []models.OrderItem
		total int64
	)
	err = retryOnConflict(ctx, s.log, "create_order", ErrMesaContention, func() error {
		return s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			var err error
			lines, total, err = priceLines(ctx, tx, channel, in.Items)
			if err != nil {
				return err
			}

			if channel == models.OrderTypeComanda {
				tab, err := openTabFor(ctx, tx, mesa)
				if err != nil {
					return err
				}
				if tab != nil {
					if err := appendToTab(ctx, tx, tab, lines, total); err != nil {
						return err
					}
					merged, err := tx.Orders.GetByID(ctx, tab.ID)
					if err != nil {
						return err
					}
					res = &OrderResult{Order: merged, Merged: true}
					return nil
				}
			}

			// a merged round is billed to the tab's customer, so only a new order resolves one
			var customer *models.Customer
			if NormalizePhone(info.Phone) != "" {
				customer, err = findOrCreateCustomer(ctx, tx, info)
				if err != nil {
					return err
				}
			}

			order := &models.Order{
				CustomerName:     strings.TrimSpace(info.Name),
				CustomerPhone:    NormalizePhone(info.Phone),
				CustomerEmail:    strings.TrimSpace(info.Email),
				OrderType:        channel,
				Status:           models.OrderStatusPendente,
				PaymentStatus:    payment,
				TotalAmountCents: total,
				Notes:            in.Notes,
			}
			if customer != nil {
				order.CustomerID = &customer.ID
			}
			if channel == models.OrderTypeDelivery {
				order.DeliveryAddress = strings.TrimSpace(info.Address)
			}
			if channel == models.OrderTypeComanda {
				m := mesa
				open := models.ComandaAberta
				order.IsComanda = true
				order.Mesa = &m
				order.StatusComanda = &open
			}

			if err := tx.Orders.Create(ctx, order); err != nil {
				return err
			}
			for i := range lines {
				lines[i].OrderID = order.ID
			}
			if err := tx.OrderItems.BulkCreate(ctx, lines); err != nil {
				return err
			}
			if customer != nil {
				if err := tx.Customers.AddStats(ctx, customer.ID, 1, total); err != nil {
					return err
				}
			}

			created, err := tx.Orders.GetByID(ctx, order.ID)
			if err != nil {
				return err
			}
			res = &OrderResult{Order: created}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderRevenueCents.WithLabelValues(string(channel)).Add(float64(total))
	if res.Merged {
		metrics.ComandaMerges.Inc()
		s.log.Info("items merged into open comanda",
			zap.String("order_id", res.Order.ID.String()),
			zap.Int("mesa", mesa),
			zap.Int64("added_cents", total),
		)
		s.publishItemsAdded(ctx, res.Order, lines, total)
	} else {
		metrics.OrdersCreated.WithLabelValues(string(channel)).Inc()
		s.log.Info("order created",
			zap.String("order_id", res.Order.ID.String()),
			zap.String("order_type", string(channel)),
			zap.Int64("total_cents", res.Order.TotalAmountCents),
		)
		s.publishCreated(ctx, res.Order)
	}
	return res, nil
}

func (s *orderService) AddItems(ctx context.Context, id uuid.UUID, items []OrderItemInput) (*models.Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	var (
		out   *models.Order
		lines []models.OrderItem
		total int64
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		tab, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tab == nil {
			return ErrOrderNotFound
		}
		if !tab.IsComanda {
			return ErrNotComanda
		}
		if !tab.IsOpenComanda() {
			return ErrComandaClosed
		}

		lines, total, err = priceLines(ctx, tx, models.OrderTypeComanda, items)
		if err != nil {
			return err
		}
		if err := appendToTab(ctx, tx, tab, lines, total); err != nil {
			return err
		}
		out, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ComandaMerges.Inc()
	metrics.OrderRevenueCents.WithLabelValues(string(models.OrderTypeComanda)).Add(float64(total))
	s.publishItemsAdded(ctx, out, lines, total)
	return out, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]*models.Order, error) {
	rf := repository.OrderListFilter{OpenOnly: f.OpenOnly}

	if f.Status != "" {
		st := models.OrderStatus(f.Status)
		if !st.Valid() {
			return nil, invalid("status", ErrInvalidStatus)
		}
		rf.Status = &st
	}
	if f.Type != "" {
		t := models.OrderType(f.Type)
		if !t.Valid() {
			return nil, invalid("type", ErrInvalidOrderType)
		}
		rf.Type = &t
	}
	if f.Mesa != "" {
		m, ok := ParseMesa(f.Mesa)
		if !ok {
			return nil, invalid("mesa", ErrInvalidMesa)
		}
		rf.Mesa = &m
	}

	list, _, err := s.repo.Orders.List(ctx, rf)
	return list, err
}

func (s *orderService) OrderStats(ctx context.Context) (*OrderStats, error) {
	c, err := s.repo.Orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &OrderStats{
		Total:      c.Total,
		Pendente:   c.ByStatus[models.OrderStatusPendente],
		Preparando: c.ByStatus[models.OrderStatusPreparando],
		Pronto:     c.ByStatus[models.OrderStatusPronto],
		Entregue:   c.ByStatus[models.OrderStatusEntregue],
		Cancelado:  c.ByStatus[models.OrderStatusCancelado],
	}, nil
}

// mutate runs fn against the locked order and returns the order as it reads after commit.
func (s *orderService) mutate(ctx context.Context, id uuid.UUID, fn func(tx *repository.Repository, o *models.Order) error) (*models.Order, error) {
	var out *models.Order
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		o, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if err := fn(tx, o); err != nil {
			return err
		}
		out, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus allows any transition between the known statuses.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, invalid("status", ErrInvalidStatus)
	}
	o, err := s.mutate(ctx, id, func(tx *repository.Repository, _ *models.Order) error {
		return tx.Orders.UpdateStatus(ctx, id, st)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatus(ctx, OrderStatusChangedEvent{OrderID: id, Status: string(st)})
	return o, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	ps := models.PaymentStatus(status)
	if !ps.Valid() {
		return nil, invalid("payment_status", ErrInvalidPayment)
	}
	o, err := s.mutate(ctx, id, func(tx *repository.Repository, _ *models.Order) error {
		return tx.Orders.UpdatePaymentStatus(ctx, id, ps)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatus(ctx, OrderStatusChangedEvent{OrderID: id, PaymentStatus: string(ps)})
	return o, nil
}

// UpdateOrder edits the customer snapshot and notes. Totals and the customer reference stay as they are.
func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error) {
	upd := map[string]any{}
	if in.CustomerName != nil {
		upd["customer_name"] = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerPhone != nil {
		upd["customer_phone"] = NormalizePhone(*in.CustomerPhone)
	}
	if in.CustomerEmail != nil {
		upd["customer_email"] = strings.TrimSpace(*in.CustomerEmail)
	}
	if in.DeliveryAddress != nil {
		upd["delivery_address"] = strings.TrimSpace(*in.DeliveryAddress)
	}
	if in.Notes != nil {
		upd["notes"] = *in.Notes
	}

	return s.mutate(ctx, id, func(tx *repository.Repository, _ *models.Order) error {
		return tx.Orders.UpdateFields(ctx, id, upd)
	})
}

// SetComandaStatus only moves a tab forward. Closing twice is a no-op, reopening is refused.
func (s *orderService) SetComandaStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	target := models.ComandaStatus(status)
	if !target.Valid() {
		return nil, invalid("status_comanda", ErrInvalidComandaStatus)
	}

	closed := false
	o, err := s.mutate(ctx, id, func(tx *repository.Repository, o *models.Order) error {
		if !o.IsComanda {
			return ErrNotComanda
		}
		open := o.IsOpenComanda()

		switch {
		case target == models.ComandaAberta && open:
			return nil
		case target == models.ComandaAberta:
			return ErrComandaClosed
		case !open:
			return nil
		}

		ok, err := tx.Orders.CloseComanda(ctx, id)
		if err != nil {
			return err
		}
		closed = ok
		return nil
	})
	if err != nil {
		return nil, err
	}

	if closed {
		metrics.ComandasClosed.Inc()
		s.log.Info("comanda closed", zap.String("order_id", id.String()))
		s.publishStatus(ctx, OrderStatusChangedEvent{OrderID: id, StatusComanda: string(models.ComandaEncerrada)})
	}
	return o, nil
}

func (s *orderService) CloseComanda(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.SetComandaStatus(ctx, id, string(models.ComandaEncerrada))
}

func (s *orderService) ComandasByMesa(ctx context.Context, mesa string) ([]*models.Order, error) {
	m, ok := ParseMesa(mesa)
	if !ok {
		return nil, invalid("mesa", ErrInvalidMesa)
	}
	return s.repo.Orders.ListOpenByMesa(ctx, m)
}

// DeleteOrder removes the order with its items and takes it back out of the customer's running stats.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		o, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if _, err := tx.OrderItems.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Orders.Delete(ctx, id); err != nil {
			return err
		}
		if o.CustomerID != nil {
			if err := tx.Customers.AddStats(ctx, *o.CustomerID, -1, -o.TotalAmountCents); err != nil {
				return err
			}
		}
		s.log.Info("order deleted", zap.String("order_id", id.String()))
		return nil
	})
}

func itemEvents(lines []models.OrderItem) []OrderItemEvent {
	out := make([]OrderItemEvent, 0, len(lines))
	for _, it := range lines {
		out = append(out, OrderItemEvent{
			MenuItemID:    it.MenuItemID,
			Quantity:      it.Quantity,
			PriceCents:    it.UnitPriceCents,
			SubtotalCents: it.SubtotalCents,
		})
	}
	return out
}

func (s *orderService) publishCreated(ctx context.Context, o *models.Order) {
	if s.events == nil {
		return
	}
	err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		OrderType:  string(o.OrderType),
		Mesa:       o.Mesa,
		Items:      itemEvents(o.Items),
		TotalCents: o.TotalAmountCents,
		CreatedAt:  o.CreatedAt,
	})
	if err != nil {
		s.log.Warn("publish order created failed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func (s *orderService) publishItemsAdded(ctx context.Context, o *models.Order, lines []models.OrderItem, added int64) {
	if s.events == nil {
		return
	}
	mesa := 0
	if o.Mesa != nil {
		mesa = *o.Mesa
	}
	err := s.events.PublishComandaItemsAdded(ctx, ComandaItemsAddedEvent{
		OrderID:    o.ID,
		Mesa:       mesa,
		Items:      itemEvents(lines),
		AddedCents: added,
		TotalCents: o.TotalAmountCents,
		AddedAt:    s.now(),
	})
	if err != nil {
		s.log.Warn("publish comanda items failed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func (s *orderService) publishStatus(ctx context.Context, e OrderStatusChangedEvent) {
	if s.events == nil {
		return
	}
	e.ChangedAt = s.now()
	if err := s.events.PublishOrderStatusChanged(ctx, e); err != nil {
		s.log.Warn("publish status change failed", zap.String("order_id", e.OrderID.String()), zap.Error(err))
	}
}
