package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/inventory"
)

func (h *Handler) listInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.List())
}

func (h *Handler) lowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.LowStock(h.lowStockThreshold))
}

// seedInventory replaces the stock mirror, then derives low-stock
// notifications from the fresh counts.
func (h *Handler) seedInventory(c *gin.Context) {
	var items []inventory.Item
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory payload"})
		return
	}

	h.inv.Seed(items)
	h.notes.SweepLowStock(h.inv, h.lowStockThreshold)
	c.JSON(http.StatusOK, gin.H{"items": len(items)})
}
