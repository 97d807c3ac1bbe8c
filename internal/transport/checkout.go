package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/checkout"
)

func (h *Handler) finalize(c *gin.Context) {
	var result checkout.PaymentResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment result"})
		return
	}

	order, err := h.checkout.Finalize(c.Request.Context(), result)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
