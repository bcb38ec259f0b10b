package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yasminalves16/restaurante/internal/handlers"
	"github.com/yasminalves16/restaurante/internal/maintenance"
	"github.com/yasminalves16/restaurante/internal/migrate"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/router"
	"github.com/yasminalves16/restaurante/internal/service"
	"github.com/yasminalves16/restaurante/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	require.NoError(t, migrate.MigrateRestaurantDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()))

	log := zap.NewNop()
	repo := repository.New(db)
	menu := service.NewMenuService(repo, nil, log)
	customers := service.NewCustomerService(repo, log)
	orders := service.NewOrderService(repo, nil, log, service.OrderOptions{})

	return router.Router(router.Handlers{
		Menu:        handlers.NewMenuHandler(menu, log),
		Orders:      handlers.NewOrderHandler(orders, log),
		Customers:   handlers.NewCustomerHandler(customers, log),
		Maintenance: handlers.NewMaintenanceHandler(maintenance.NewService(repo, customers, log), log),
	}, []string{"http://localhost:3000"}, log)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func createItem(t *testing.T, r http.Handler, body map[string]any) string {
	t.Helper()
	code, resp := do(t, r, http.MethodPost, "/api/menu", body)
	require.Equal(t, http.StatusCreated, code, resp)
	return resp["item"].(map[string]any)["id"].(string)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	code, resp := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["status"])
}

func TestMenuEndpoints(t *testing.T) {
	r := setupRouter(t)

	id := createItem(t, r, map[string]any{
		"name": "Sorvete", "price": "9.90", "category": "sobremesa",
		"available_for_delivery": "no",
	})
	createItem(t, r, map[string]any{"name": "X-Burger", "price": 18.90, "category": "prato principal"})

	code, resp := do(t, r, http.MethodGet, "/api/menu?type=delivery", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "X-Burger", items[0].(map[string]any)["name"])
	assert.Equal(t, 18.9, items[0].(map[string]any)["price"])

	code, resp = do(t, r, http.MethodGet, "/api/menu/categories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["categories"], 2)

	code, _ = do(t, r, http.MethodGet, "/api/menu/"+id, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodGet, "/api/menu/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodGet, "/api/menu/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = do(t, r, http.MethodPost, "/api/menu", map[string]any{"name": "Agua", "category": "bebida", "price": -1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, resp["success"])

	code, _ = do(t, r, http.MethodDelete, "/api/menu/"+id, nil)
	require.Equal(t, http.StatusOK, code)

	_, resp = do(t, r, http.MethodGet, "/api/menu/admin", nil)
	assert.Len(t, resp["items"], 2)
	_, resp = do(t, r, http.MethodGet, "/api/menu", nil)
	assert.Len(t, resp["items"], 1)
}

func TestOrderEndpoints_ComandaFlow(t *testing.T) {
	r := setupRouter(t)
	batata := createItem(t, r, map[string]any{"name": "Batata Frita", "price": "12.90", "category": "acompanhamento"})
	refri := createItem(t, r, map[string]any{"name": "Refrigerante", "price": "6.50", "category": "bebida"})

	code, resp := do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type": "comanda",
		"mesa":       5,
		"items":      []map[string]any{{"menu_item_id": batata, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, code, resp)
	first := resp["order"].(map[string]any)
	assert.Equal(t, false, resp["merged"])
	assert.Equal(t, "aberta", first["status_comanda"])
	assert.Equal(t, float64(5), first["mesa"])

	code, resp = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type": "comanda",
		"mesa":       "5",
		"items":      []map[string]any{{"menu_item_id": refri, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, code, resp)
	merged := resp["order"].(map[string]any)
	assert.Equal(t, true, resp["merged"])
	assert.Equal(t, first["id"], merged["id"])
	assert.Equal(t, 19.4, merged["total_amount"])
	assert.Len(t, merged["items"], 2)

	id := first["id"].(string)
	code, resp = do(t, r, http.MethodGet, "/api/comandas/mesa/5", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["comandas"], 1)

	code, _ = do(t, r, http.MethodPut, "/api/orders/"+id+"/comanda", map[string]any{"status_comanda": "encerrada"})
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, r, http.MethodPost, "/api/orders/"+id+"/items", map[string]any{
		"items": []map[string]any{{"menu_item_id": refri, "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "conflict", resp["error"].(map[string]any)["code"])

	code, _ = do(t, r, http.MethodPut, "/api/orders/"+id+"/comanda", map[string]any{"status_comanda": "aberta"})
	assert.Equal(t, http.StatusConflict, code)

	code, resp = do(t, r, http.MethodGet, "/api/comandas/mesa/5", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["comandas"])
}

func TestOrderEndpoints_Validation(t *testing.T) {
	r := setupRouter(t)
	burger := createItem(t, r, map[string]any{"name": "X-Burger", "price": "18.90", "category": "prato principal"})

	code, resp := do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type": "comanda",
		"mesa":       "abc",
		"items":      []map[string]any{{"menu_item_id": burger, "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, code)
	fields := resp["error"].(map[string]any)["fields"].([]any)
	assert.Equal(t, "mesa", fields[0].(map[string]any)["field"])

	code, _ = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type":    "local",
		"items":         []map[string]any{{"menu_item_id": uuid.NewString(), "quantity": 1}},
		"customer_name": "Ana",
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type": "local",
		"items":      []map[string]any{{"menu_item_id": "nope", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderEndpoints_LocalOrderAndStatus(t *testing.T) {
	r := setupRouter(t)
	burger := createItem(t, r, map[string]any{"name": "X-Burger", "price": "18.90", "category": "prato principal"})

	code, resp := do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"order_type":     "local",
		"customer_name":  "Ana",
		"customer_phone": "11999990000",
		"items":          []map[string]any{{"menu_item_id": burger, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code, resp)
	order := resp["order"].(map[string]any)
	assert.Equal(t, 37.8, order["total_amount"])
	assert.Equal(t, "pendente", order["status"])
	assert.Equal(t, "nao_pago", order["payment_status"])
	id := order["id"].(string)

	code, resp = do(t, r, http.MethodPut, "/api/orders/"+id+"/status", map[string]any{"status": "pronto"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pronto", resp["order"].(map[string]any)["status"])

	code, _ = do(t, r, http.MethodPut, "/api/orders/"+id+"/status", map[string]any{"status": "perdido"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = do(t, r, http.MethodPut, "/api/orders/"+id+"/payment", map[string]any{"payment_status": "pago"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pago", resp["order"].(map[string]any)["payment_status"])

	code, resp = do(t, r, http.MethodGet, "/api/orders/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.Equal(t, float64(1), stats["ready_orders"])

	code, resp = do(t, r, http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 37.8, resp["stats"].(map[string]any)["total_revenue"])

	code, resp = do(t, r, http.MethodGet, "/api/users?search=ana", nil)
	require.Equal(t, http.StatusOK, code)
	users := resp["users"].([]any)
	require.Len(t, users, 1)
	userID := users[0].(map[string]any)["id"].(string)

	code, resp = do(t, r, http.MethodGet, "/api/users/"+userID+"/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["orders"], 1)

	code, _ = do(t, r, http.MethodPost, "/api/maintenance/recompute-stats", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodDelete, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/orders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCustomerEndpoints(t *testing.T) {
	r := setupRouter(t)

	code, resp := do(t, r, http.MethodPost, "/api/users", map[string]any{"customer_name": "Bia", "customer_phone": "222"})
	require.Equal(t, http.StatusCreated, code, resp)
	id := resp["user"].(map[string]any)["id"].(string)

	code, _ = do(t, r, http.MethodPost, "/api/users", map[string]any{"customer_name": "Outra", "customer_phone": "222"})
	assert.Equal(t, http.StatusConflict, code)

	code, resp = do(t, r, http.MethodPut, "/api/users/"+id, map[string]any{"customer_email": "bia@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bia@example.com", resp["user"].(map[string]any)["customer_email"])

	code, _ = do(t, r, http.MethodDelete, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func fieldNames(t *testing.T, resp map[string]any) []string {
	t.Helper()
	raw, ok := resp["error"].(map[string]any)["fields"].([]any)
	require.True(t, ok, resp)
	names := make([]string, 0, len(raw))
	for _, f := range raw {
		names = append(names, f.(map[string]any)["field"].(string))
	}
	return names
}

func TestRequestBinding_ReportsFieldErrors(t *testing.T) {
	r := setupRouter(t)
	burger := createItem(t, r, map[string]any{"name": "X-Burger", "price": "18.90", "category": "Lanches"})

	cases := []struct {
		name   string
		method string
		path   string
		body   map[string]any
		field  string
	}{
		{"unknown order type", http.MethodPost, "/api/orders", map[string]any{
			"order_type": "drive", "customer_name": "Ana",
			"items": []map[string]any{{"menu_item_id": burger, "quantity": 1}},
		}, "order_type"},
		{"missing order type", http.MethodPost, "/api/orders", map[string]any{
			"customer_name": "Ana",
			"items":         []map[string]any{{"menu_item_id": burger, "quantity": 1}},
		}, "order_type"},
		{"empty items", http.MethodPost, "/api/orders", map[string]any{
			"order_type": "local", "customer_name": "Ana", "items": []map[string]any{},
		}, "items"},
		{"zero quantity", http.MethodPost, "/api/orders", map[string]any{
			"order_type": "local", "customer_name": "Ana",
			"items": []map[string]any{{"menu_item_id": burger, "quantity": 0}},
		}, "quantity"},
		{"malformed item id", http.MethodPost, "/api/orders", map[string]any{
			"order_type": "local", "customer_name": "Ana",
			"items": []map[string]any{{"menu_item_id": "nope", "quantity": 1}},
		}, "menu_item_id"},
		{"menu item without name", http.MethodPost, "/api/menu", map[string]any{
			"price": "5.00", "category": "Bebidas",
		}, "name"},
		{"menu item without category", http.MethodPost, "/api/menu", map[string]any{
			"name": "Agua", "price": "5.00",
		}, "category"},
		{"customer without phone", http.MethodPost, "/api/users", map[string]any{
			"customer_name": "Bia",
		}, "customer_phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, r, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, code, resp)
			assert.Equal(t, "validation_error", resp["error"].(map[string]any)["code"])
			assert.Contains(t, fieldNames(t, resp), tc.field)
		})
	}

	code, resp := do(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["orders"])
}
