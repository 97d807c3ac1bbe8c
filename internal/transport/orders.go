package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/internal/logger"
	"tillpoint/internal/middleware"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
)

// scope returns the cashier id to filter by: the signed-in cashier unless
// the till asks for every terminal's records with ?all=true.
func scope(c *gin.Context) string {
	if c.Query("all") == "true" {
		return ""
	}
	return middleware.CashierID(c)
}

func (h *Handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Orders(scope(c)))
}

func (h *Handler) getOrder(c *gin.Context) {
	key := c.Param("key")

	order, err := h.store.Find(orders.ByID(key))
	if err != nil {
		order, err = h.store.Find(orders.ByCode(key))
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) listTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Transactions(scope(c)))
}

func (h *Handler) listVoidLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.VoidLogs(scope(c)))
}

// refresh pulls the platform's view of orders and void logs and folds it
// into the local store. Existing entries are superseded, never duplicated.
func (h *Handler) refresh(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx)

	remote, err := h.api.ListOrders(ctx, platform.ListOrdersQuery{})
	if err != nil {
		log.Warn("order refresh failed", zap.Error(err))
		fail(c, err)
		return
	}
	for _, o := range remote {
		h.store.Upsert(o)
		h.store.MergeVoidLogs(o.VoidLogs)
	}

	merged := 0
	logs, err := h.api.ListVoidLogs(ctx, platform.ListVoidLogsQuery{})
	if err != nil {
		// Orders landed; a void-log fetch failure only staled that view.
		log.Warn("void log refresh failed", zap.Error(err))
	} else {
		merged = h.store.MergeVoidLogs(logs)
	}

	c.JSON(http.StatusOK, gin.H{"orders": len(remote), "voidLogs": merged})
}

func (h *Handler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notes.List())
}
