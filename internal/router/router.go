package router

import (
	"net/http"
	"time"

	"github.com/yasminalves16/restaurante/internal/handlers"
	"github.com/yasminalves16/restaurante/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Menu        *handlers.MenuHandler
	Orders      *handlers.OrderHandler
	Customers   *handlers.CustomerHandler
	Maintenance *handlers.MaintenanceHandler
}

func Router(h Handlers, allowOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	menu := api.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.GET("/categories", h.Menu.Categories)
		menu.GET("/admin", h.Menu.Admin)
		menu.GET("/:id", h.Menu.Get)
		menu.POST("", h.Menu.Create)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.Orders.List)
		orders.GET("/stats", h.Orders.Stats)
		orders.GET("/:id", h.Orders.Get)
		orders.POST("", h.Orders.Create)
		orders.PUT("/:id", h.Orders.Update)
		orders.PUT("/:id/status", h.Orders.UpdateStatus)
		orders.PUT("/:id/payment", h.Orders.UpdatePayment)
		orders.PUT("/:id/comanda", h.Orders.SetComandaStatus)
		orders.POST("/:id/items", h.Orders.AddItems)
		orders.DELETE("/:id", h.Orders.Delete)
	}

	api.GET("/comandas/mesa/:mesa", h.Orders.ComandasByMesa)

	users := api.Group("/users")
	{
		users.GET("", h.Customers.List)
		users.GET("/stats", h.Customers.Stats)
		users.POST("", h.Customers.Create)
		users.GET("/:id", h.Customers.Get)
		users.GET("/:id/orders", h.Customers.Orders)
		users.PUT("/:id", h.Customers.Update)
		users.DELETE("/:id", h.Customers.Delete)
	}

	if h.Maintenance != nil {
		api.POST("/maintenance/recompute-stats", h.Maintenance.RecomputeStats)
	}

	return r
}
