package transport

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tillpoint/internal/middleware"
)

// NewRouter wires the terminal API. The till UI is the only intended
// client, so CORS is open to any local origin and everything except
// sign-in and health sits behind the session token.
func NewRouter(h *Handler, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "tillpoint"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit())

	v1.POST("/auth/login", h.login)

	protected := v1.Group("")
	protected.Use(middleware.SessionAuth(sessionSecret))

	protected.POST("/auth/logout", h.logout)
	protected.GET("/auth/me", h.me)

	cartGroup := protected.Group("/cart")
	{
		cartGroup.GET("", h.cartState)
		cartGroup.POST("/items", h.addCartItem)
		cartGroup.PUT("/items/:index", h.updateCartItem)
		cartGroup.DELETE("/items/:index", h.removeCartItem)
		cartGroup.DELETE("", h.clearCart)
		cartGroup.PUT("/discount", h.setDiscount)
		cartGroup.GET("/pending", h.pendingOrder)
	}

	protected.POST("/checkout", h.finalize)

	voidGroup := protected.Group("/void")
	{
		voidGroup.GET("", h.voidState)
		voidGroup.POST("/request", h.requestVoid)
		voidGroup.POST("/authorize", h.authorizeVoid)
		voidGroup.POST("/submit", h.submitVoid)
		voidGroup.POST("/cancel", h.cancelVoid)
	}

	protected.GET("/orders", h.listOrders)
	protected.GET("/orders/:key", h.getOrder)
	protected.GET("/transactions", h.listTransactions)
	protected.GET("/void-logs", h.listVoidLogs)
	protected.POST("/refresh", h.refresh)

	protected.GET("/inventory", h.listInventory)
	protected.GET("/inventory/low-stock", h.lowStock)
	protected.PUT("/inventory", h.seedInventory)

	protected.GET("/notifications", h.listNotifications)

	protected.GET("/journal/summary", h.daySummary)
	protected.GET("/journal/receipts/:code", h.receipt)

	return r
}
