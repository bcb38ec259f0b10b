package handlers

import (
	"net/http"

	"github.com/yasminalves16/restaurante/internal/dto"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// List godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param status query string false "Order status"
// @Param type query string false "Order type"
// @Param mesa query string false "Mesa"
// @Param open query bool false "Only open comandas"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	list, err := h.orders.ListOrders(c.Request.Context(), service.ListFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Mesa:     c.Query("mesa"),
		OpenOnly: service.ParseTruthy(c.Query("open")),
	})
	if err != nil {
		writeError(c, h.log, "list_orders", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"orders": dto.NewOrderList(list)}))
}

// Stats godoc
// @Summary Order counts by status
// @Tags orders
// @Produce json
// @Success 200 {object} dto.OrderStatsResponse
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	st, err := h.orders.OrderStats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "order_stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"stats": dto.NewOrderStatsResponse(st)}))
}

// Get godoc
// @Summary Order by ID
// @Tags orders
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "get_order", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"order": dto.NewOrderResponse(o)}))
}

// Create godoc
// @Summary Create order
// @Description Answers 201 for a new order and 200 when the items were merged into the mesa's open comanda
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order"
// @Success 200 {object} map[string]interface{} "Merged into open comanda"
// @Success 201 {object} map[string]interface{} "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		writeError(c, h.log, "create_order", err)
		return
	}

	res, err := h.orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, "create_order", err)
		return
	}

	if res.Merged {
		c.JSON(http.StatusOK, dto.OK("items added to open comanda", gin.H{
			"order":  dto.NewOrderResponse(res.Order),
			"merged": true,
		}))
		return
	}
	c.JSON(http.StatusCreated, dto.OK("order created", gin.H{
		"order":  dto.NewOrderResponse(res.Order),
		"merged": false,
	}))
}

// AddItems godoc
// @Summary Add items to comanda
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param items body dto.AddItemsRequest true "Items"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id}/items [post]
func (h *OrderHandler) AddItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	items, err := dto.ParseItems(req.Items)
	if err != nil {
		writeError(c, h.log, "add_items", err)
		return
	}
	o, err := h.orders.AddItems(c.Request.Context(), id, items)
	if err != nil {
		writeError(c, h.log, "add_items", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("items added to comanda", gin.H{"order": dto.NewOrderResponse(o)}))
}

// Update godoc
// @Summary Update order details
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param order body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	o, err := h.orders.UpdateOrder(c.Request.Context(), id, req.Input())
	if err != nil {
		writeError(c, h.log, "update_order", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("order updated", gin.H{"order": dto.NewOrderResponse(o)}))
}

// UpdateStatus godoc
// @Summary Set order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param status body dto.StatusRequest true "Status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.log, "update_status", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("status updated", gin.H{"order": dto.NewOrderResponse(o)}))
}

// UpdatePayment godoc
// @Summary Set payment status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param payment body dto.PaymentRequest true "Payment status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	o, err := h.orders.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		writeError(c, h.log, "update_payment", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("payment status updated", gin.H{"order": dto.NewOrderResponse(o)}))
}

// SetComandaStatus godoc
// @Summary Open or close a comanda
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param comanda body dto.ComandaStatusRequest true "Comanda status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id}/comanda [put]
func (h *OrderHandler) SetComandaStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ComandaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	o, err := h.orders.SetComandaStatus(c.Request.Context(), id, req.StatusComanda)
	if err != nil {
		writeError(c, h.log, "set_comanda_status", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("comanda status updated", gin.H{"order": dto.NewOrderResponse(o)}))
}

// Delete godoc
// @Summary Delete order
// @Tags orders
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "delete_order", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("order deleted", nil))
}

// ComandasByMesa godoc
// @Summary Open comandas of a mesa
// @Tags orders
// @Produce json
// @Param mesa path string true "Mesa"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/comandas/mesa/{mesa} [get]
func (h *OrderHandler) ComandasByMesa(c *gin.Context) {
	list, err := h.orders.ComandasByMesa(c.Request.Context(), c.Param("mesa"))
	if err != nil {
		writeError(c, h.log, "comandas_by_mesa", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"comandas": dto.NewOrderList(list)}))
}
