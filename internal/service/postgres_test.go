package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/service"
	"github.com/yasminalves16/restaurante/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ConcurrentComandaAndCustomers(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container test")
	}
	f := newFixtureOn(t, testutil.SetupTestPostgres(t), service.OrderOptions{})
	ctx := context.Background()

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, 2*workers)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.orders.CreateOrder(ctx, service.CreateOrderInput{
				OrderType: models.OrderTypeComanda,
				Mesa:      "11",
				Items:     []service.OrderItemInput{f.line("Batata Frita", 1)},
			})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := f.customers.FindOrCreate(ctx, service.CustomerInfo{Name: "Ana", Phone: "11999990000"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	open, err := f.orders.ComandasByMesa(ctx, "11")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(workers*1290), open[0].TotalAmountCents)

	var customers int64
	require.NoError(t, f.db.Model(&models.Customer{}).Where("phone = ?", "11999990000").Count(&customers).Error)
	assert.Equal(t, int64(1), customers)

	tab, err := f.customers.FindByPhone(ctx, "mesa 11")
	require.NoError(t, err)
	require.NotNil(t, tab)
	assert.Equal(t, int64(1), tab.TotalOrders)
	assert.Equal(t, int64(workers*1290), tab.TotalSpentCents)
}
