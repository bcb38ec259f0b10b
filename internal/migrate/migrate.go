package migrate

import (
	"context"

	"github.com/yasminalves16/restaurante/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateChecks           bool // CHECK constraints, postgres only
	CreateIndexes          bool // indexes and partial UNIQUEs
	CreateUpdatedAtTrigger bool // updated_at trigger, postgres only
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

// Partial unique indexes enforce the two storage-level rules: one customer per non-empty phone and
// one open tab per mesa. Both statements are valid in postgres and sqlite.
var indexSteps = []step{
	{"ux_customers_phone", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_phone
ON customers (phone)
WHERE phone <> ''`},
	{"ux_orders_open_mesa", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_open_mesa
ON orders (mesa)
WHERE status_comanda = 'aberta'`},
	{"ix_orders_customer_created", `
CREATE INDEX IF NOT EXISTS ix_orders_customer_created
ON orders (customer_id, created_at)`},
	{"ix_orders_status_created", `
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at)`},
	{"ix_menu_items_category_name", `
CREATE INDEX IF NOT EXISTS ix_menu_items_category_name
ON menu_items (category, name)`},
}

var checkSteps = []step{
	{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pendente','preparando','pronto','entregue','cancelado'));`},
	{"chk_orders_payment_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_payment_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_payment_status_allowed
  CHECK (payment_status IN ('pago','nao_pago'));`},
	{"chk_orders_type_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_type_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_type_allowed
  CHECK (order_type IN ('delivery','local','comanda'));`},
	{"chk_orders_comanda_shape", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_comanda_shape;
ALTER TABLE orders ADD CONSTRAINT chk_orders_comanda_shape
  CHECK (
    (order_type = 'comanda' AND is_comanda AND mesa > 0 AND status_comanda IN ('aberta','encerrada'))
    OR (order_type <> 'comanda' AND NOT is_comanda AND status_comanda IS NULL)
  );`},
	{"chk_orders_total_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_total_non_negative
  CHECK (total_amount_cents >= 0);`},
	{"chk_order_items_quantity_gt_zero", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);`},
	{"chk_order_items_prices_non_negative", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price_cents >= 0 AND subtotal_cents >= 0);`},
	{"chk_menu_items_price_non_negative", `
ALTER TABLE menu_items DROP CONSTRAINT IF EXISTS chk_menu_items_price_non_negative;
ALTER TABLE menu_items ADD CONSTRAINT chk_menu_items_price_non_negative
  CHECK (price_cents >= 0);`},
	{"chk_customers_stats_non_negative", `
ALTER TABLE customers DROP CONSTRAINT IF EXISTS chk_customers_stats_non_negative;
ALTER TABLE customers ADD CONSTRAINT chk_customers_stats_non_negative
  CHECK (total_orders >= 0 AND total_spent_cents >= 0);`},
}

// Availability flags carry no gorm default: gorm would replace an explicit false with it on insert.
const menuFlagDefaults = `
ALTER TABLE menu_items ALTER COLUMN available_for_delivery SET DEFAULT true;
ALTER TABLE menu_items ALTER COLUMN available_for_local SET DEFAULT true;
ALTER TABLE menu_items ALTER COLUMN available_for_comanda SET DEFAULT true;
ALTER TABLE menu_items ALTER COLUMN is_active SET DEFAULT true;
`

const updatedAtTrigger = `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_customers_updated ON customers;
CREATE TRIGGER trg_customers_updated
BEFORE UPDATE ON customers
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_menu_items_updated ON menu_items;
CREATE TRIGGER trg_menu_items_updated
BEFORE UPDATE ON menu_items
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`

func MigrateRestaurantDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting restaurant database migration")
	db = db.WithContext(ctx)
	isPostgres := db.Dialector.Name() == "postgres"

	log.Info("creating tables menu_items, customers, orders, order_items")
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Customer{}, &models.Order{}, &models.OrderItem{}); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if isPostgres {
		log.Info("setting menu_items column defaults")
		if err := db.Exec(menuFlagDefaults).Error; err != nil {
			log.Error("failed to set menu_items column defaults", zap.Error(err))
			return err
		}
	}

	if opt.CreateUpdatedAtTrigger && isPostgres {
		log.Info("creating updated_at triggers")
		if err := db.Exec(updatedAtTrigger).Error; err != nil {
			log.Error("failed to create updated_at triggers", zap.Error(err))
			return err
		}
	}

	// sqlite has no ALTER TABLE ... ADD CONSTRAINT
	if opt.CreateChecks && isPostgres {
		log.Info("creating CHECK constraints")
		for _, s := range checkSteps {
			if err := db.Exec(s.sql).Error; err != nil {
				log.Error("failed to create CHECK constraint", zap.String("name", s.name), zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateIndexes {
		log.Info("creating indexes")
		for _, s := range indexSteps {
			if err := db.Exec(s.sql).Error; err != nil {
				log.Error("failed to create index", zap.String("name", s.name), zap.Error(err))
				return err
			}
		}
	}

	log.Info("restaurant database migration completed")
	return nil
}
