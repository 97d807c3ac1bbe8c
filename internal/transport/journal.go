package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// daySummary reports the terminal's journaled sales and voids for one day,
// defaulting to today and the signed-in cashier.
func (h *Handler) daySummary(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary, err := h.journal.DaySummary(c.Request.Context(), day, scope(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// receipt reprints a journaled sale by its order code.
func (h *Handler) receipt(c *gin.Context) {
	rec, err := h.journal.SaleByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":    rec.OrderID,
		"code":       rec.Code,
		"cashierId":  rec.CashierID,
		"total":      rec.Total,
		"method":     rec.Method,
		"recordedAt": rec.RecordedAt,
		"order":      json.RawMessage(rec.Payload),
	})
}
