package handlers

import (
	"net/http"

	"github.com/yasminalves16/restaurante/internal/dto"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customers service.CustomerService
	log       *zap.Logger
}

func NewCustomerHandler(customers service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, log: log}
}

// List godoc
// @Summary List customers
// @Tags users
// @Produce json
// @Param search query string false "Name or phone"
// @Param sort_by query string false "Sort field"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users [get]
func (h *CustomerHandler) List(c *gin.Context) {
	list, err := h.customers.ListCustomers(c.Request.Context(), service.ListCustomersFilter{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	})
	if err != nil {
		writeError(c, h.log, "list_customers", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"users": dto.NewCustomerList(list)}))
}

// Stats godoc
// @Summary Customer directory stats
// @Tags users
// @Produce json
// @Success 200 {object} dto.DirectoryStatsResponse
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users/stats [get]
func (h *CustomerHandler) Stats(c *gin.Context) {
	st, err := h.customers.DirectoryStats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "directory_stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"stats": dto.NewDirectoryStatsResponse(st)}))
}

// Create godoc
// @Summary Create customer
// @Tags users
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	cu, err := h.customers.CreateCustomer(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, "create_customer", err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("customer created", gin.H{"user": dto.NewCustomerResponse(cu)}))
}

// Get godoc
// @Summary Customer by ID
// @Tags users
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cu, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "get_customer", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"user": dto.NewCustomerResponse(cu)}))
}

// Orders godoc
// @Summary Customer order history
// @Tags users
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users/{id}/orders [get]
func (h *CustomerHandler) Orders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cu, err := h.customers.GetCustomer(ctx, id)
	if err != nil {
		writeError(c, h.log, "customer_orders", err)
		return
	}
	orders, err := h.customers.CustomerOrders(ctx, id)
	if err != nil {
		writeError(c, h.log, "customer_orders", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{
		"user":   dto.NewCustomerResponse(cu),
		"orders": dto.NewOrderList(orders),
	}))
}

// Update godoc
// @Summary Update customer
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	cu, err := h.customers.UpdateCustomer(c.Request.Context(), id, req.Input())
	if err != nil {
		writeError(c, h.log, "update_customer", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("customer updated", gin.H{"user": dto.NewCustomerResponse(cu)}))
}

// Delete godoc
// @Summary Delete customer
// @Tags users
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/users/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customers.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "delete_customer", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("customer deleted", nil))
}
