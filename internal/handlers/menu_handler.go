package handlers

import (
	"net/http"

	"github.com/yasminalves16/restaurante/internal/dto"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MenuHandler struct {
	menu service.MenuService
	log  *zap.Logger
}

func NewMenuHandler(menu service.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, log: log}
}

// List godoc
// @Summary Public menu
// @Description Active items available for the channel, optionally filtered by category
// @Tags menu
// @Produce json
// @Param type query string false "delivery, local or comanda"
// @Param category query string false "Category"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menu.ListMenu(c.Request.Context(), c.Query("type"), c.Query("category"))
	if err != nil {
		writeError(c, h.log, "list_menu", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"items": dto.NewMenuItemList(items)}))
}

// Categories godoc
// @Summary Menu categories
// @Tags menu
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu/categories [get]
func (h *MenuHandler) Categories(c *gin.Context) {
	cats, err := h.menu.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "list_categories", err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"categories": cats}))
}

// Admin godoc
// @Summary All menu items
// @Description Includes inactive items
// @Tags menu
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu/admin [get]
func (h *MenuHandler) Admin(c *gin.Context) {
	items, err := h.menu.ListAllItems(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "list_all_items", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"items": dto.NewMenuItemList(items)}))
}

// Get godoc
// @Summary Menu item by ID
// @Tags menu
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.menu.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "get_item", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", gin.H{"item": dto.NewMenuItemResponse(item)}))
}

// Create godoc
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param item body dto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	item, err := h.menu.CreateItem(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, "create_item", err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("menu item created", gin.H{"item": dto.NewMenuItemResponse(item)}))
}

// Update godoc
// @Summary Update menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param item body dto.UpdateMenuItemRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	item, err := h.menu.UpdateItem(c.Request.Context(), id, req.Input())
	if err != nil {
		writeError(c, h.log, "update_item", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("menu item updated", gin.H{"item": dto.NewMenuItemResponse(item)}))
}

// Delete godoc
// @Summary Deactivate menu item
// @Tags menu
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/menu/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.menu.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "delete_item", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("menu item deactivated", nil))
}
