package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/yasminalves16/restaurante/internal/migrate"
	"github.com/yasminalves16/restaurante/internal/models"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/service"
	"github.com/yasminalves16/restaurante/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// setup migrates without the unique indexes so that legacy duplicates can be written.
func setup(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := migrate.MigrateRestaurantDB(context.Background(), db, zap.NewNop(), migrate.MigrateOptions{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := repository.New(db)
	return NewService(repo, service.NewCustomerService(repo, zap.NewNop()), zap.NewNop()), repo
}

func addOrder(t *testing.T, repo *repository.Repository, customerID *uuid.UUID, phone string, cents int64, at time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		CustomerID:       customerID,
		CustomerName:     "Cliente " + phone,
		CustomerPhone:    phone,
		OrderType:        models.OrderTypeLocal,
		Status:           models.OrderStatusPendente,
		PaymentStatus:    models.PaymentStatusNaoPago,
		TotalAmountCents: cents,
		CreatedAt:        at,
	}
	if err := repo.Orders.Create(context.Background(), o); err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func TestBackfillOrderCustomers(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	addOrder(t, repo, nil, "111", 1000, base)
	last := addOrder(t, repo, nil, "111", 500, base.Add(time.Minute))
	addOrder(t, repo, nil, "", 700, base.Add(2*time.Minute))

	linked, skipped, err := svc.BackfillOrderCustomers(ctx)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if linked != 2 || skipped != 1 {
		t.Fatalf("expected 2 linked and 1 skipped, got %d/%d", linked, skipped)
	}

	c, err := repo.Customers.GetByPhone(ctx, "111")
	if err != nil || c == nil {
		t.Fatalf("customer not created: %v", err)
	}
	if c.Name != last.CustomerName {
		t.Fatalf("expected name from the latest order, got %q", c.Name)
	}

	linked, _, err = svc.BackfillOrderCustomers(ctx)
	if err != nil || linked != 0 {
		t.Fatalf("second backfill must link nothing, got %d %v", linked, err)
	}
}

func TestDedupePhones_KeepsNewest(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	older := &models.Customer{Phone: "111", Name: "Velho", CreatedAt: base}
	newer := &models.Customer{Phone: "111", Name: "Novo", CreatedAt: base.Add(time.Minute)}
	for _, c := range []*models.Customer{older, newer} {
		if err := repo.Customers.Create(ctx, c); err != nil {
			t.Fatalf("create customer: %v", err)
		}
	}
	addOrder(t, repo, &older.ID, "111", 1200, base)
	addOrder(t, repo, &newer.ID, "111", 300, base.Add(time.Minute))

	merged, err := svc.DedupePhones(ctx)
	if err != nil || merged != 1 {
		t.Fatalf("dedupe: %d %v", merged, err)
	}

	list, err := repo.Customers.ListByPhone(ctx, "111")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one customer left, got %d %v", len(list), err)
	}
	if list[0].ID != newer.ID {
		t.Fatal("the newest customer must be kept")
	}
	if list[0].TotalOrders != 2 || list[0].TotalSpentCents != 1500 {
		t.Fatalf("stats not recomputed: %d/%d", list[0].TotalOrders, list[0].TotalSpentCents)
	}
}

func TestRunAll_IsIdempotent(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	c := &models.Customer{Phone: "222", Name: "Bia"}
	if err := repo.Customers.Create(ctx, c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	addOrder(t, repo, &c.ID, "222", 900, base)
	addOrder(t, repo, nil, "222", 100, base.Add(time.Minute))

	rep, err := svc.RunAll(ctx)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if rep.OrdersLinked != 1 || rep.DuplicatesMerged != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	first, _ := repo.Customers.GetByID(ctx, c.ID)
	if _, err := svc.RunAll(ctx); err != nil {
		t.Fatalf("second RunAll: %v", err)
	}
	second, _ := repo.Customers.GetByID(ctx, c.ID)

	if first.TotalOrders != 2 || first.TotalSpentCents != 1000 {
		t.Fatalf("unexpected stats: %d/%d", first.TotalOrders, first.TotalSpentCents)
	}
	if second.TotalOrders != first.TotalOrders || second.TotalSpentCents != first.TotalSpentCents {
		t.Fatal("a second run must not change the stats")
	}
}

func TestScheduler_RunOnceNowAndStop(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	c := &models.Customer{Phone: "333", Name: "Caio"}
	if err := repo.Customers.Create(ctx, c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	addOrder(t, repo, &c.ID, "333", 450, time.Now().UTC())

	sch := NewScheduler(svc, time.Hour, zap.NewNop())
	sch.Start(ctx)
	if err := sch.RunOnceNow(ctx); err != nil {
		t.Fatalf("RunOnceNow: %v", err)
	}
	sch.Stop()
	sch.Stop()

	got, _ := repo.Customers.GetByID(ctx, c.ID)
	if got.TotalOrders != 1 || got.TotalSpentCents != 450 {
		t.Fatalf("stats not reconciled: %d/%d", got.TotalOrders, got.TotalSpentCents)
	}
}
