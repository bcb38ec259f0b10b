package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/yasminalves16/restaurante/internal/migrate"
	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/service"
	"github.com/yasminalves16/restaurante/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	repo      *repository.Repository
	menu      service.MenuService
	customers service.CustomerService
	orders    service.OrderService
	events    *recordingBus
	items     map[string]*models.MenuItem
}

type sampleItem struct {
	name, category, price string
	delivery              bool
}

var sampleMenu = []sampleItem{
	{"X-Burger", "Lanches", "18.90", true},
	{"X-Salada", "Lanches", "22.50", true},
	{"Batata Frita", "Acompanhamentos", "12.90", true},
	{"Refrigerante", "Bebidas", "6.50", true},
	{"Suco Natural", "Bebidas", "8.90", true},
	{"Sorvete", "Sobremesas", "9.90", false},
}

func newFixture(t *testing.T, opts service.OrderOptions) *fixture {
	return newFixtureOn(t, testutil.SetupTestDB(t), opts)
}

func newFixtureOn(t *testing.T, db *gorm.DB, opts service.OrderOptions) *fixture {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, migrate.MigrateRestaurantDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()))

	repo := repository.New(db)
	f := &fixture{
		db:        db,
		repo:      repo,
		menu:      service.NewMenuService(repo, nil, zap.NewNop()),
		customers: service.NewCustomerService(repo, zap.NewNop()),
		events:    &recordingBus{},
		items:     map[string]*models.MenuItem{},
	}
	f.orders = service.NewOrderService(repo, f.events, zap.NewNop(), opts)

	for _, s := range sampleMenu {
		price := decimal.RequireFromString(s.price)
		m, err := f.menu.CreateItem(ctx, service.CreateMenuItemInput{
			Name:                 s.name,
			Category:             s.category,
			Price:                &price,
			AvailableForDelivery: s.delivery,
		})
		require.NoError(t, err)
		f.items[s.name] = m
	}
	return f
}

func (f *fixture) line(name string, qty int) service.OrderItemInput {
	return service.OrderItemInput{MenuItemID: f.items[name].ID, Quantity: qty}
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	return n
}

type recordingBus struct {
	mu      sync.Mutex
	created []service.OrderCreatedEvent
	added   []service.ComandaItemsAddedEvent
	changed []service.OrderStatusChangedEvent
}

func (b *recordingBus) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, e)
	return nil
}

func (b *recordingBus) PublishComandaItemsAdded(_ context.Context, e service.ComandaItemsAddedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.added = append(b.added, e)
	return nil
}

func (b *recordingBus) PublishOrderStatusChanged(_ context.Context, e service.OrderStatusChangedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changed = append(b.changed, e)
	return nil
}
