package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/cart"
	"tillpoint/internal/middleware"
)

func (h *Handler) cartState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":    h.cart.Items(),
		"discount": h.cart.Discount(),
		"totals":   h.cart.Totals(),
		"draftId":  h.cart.DraftID(),
	})
}

func (h *Handler) addCartItem(c *gin.Context) {
	var item cart.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item"})
		return
	}

	if err := h.cart.Add(item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"totals": h.cart.Totals()})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.cart.UpdateQuantity(index, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": h.cart.Totals()})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	if err := h.cart.Remove(index); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": h.cart.Totals()})
}

func (h *Handler) clearCart(c *gin.Context) {
	h.cart.Clear()
	c.Status(http.StatusNoContent)
}

func (h *Handler) setDiscount(c *gin.Context) {
	var d cart.Discount
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount"})
		return
	}

	h.cart.SetDiscount(d)
	c.JSON(http.StatusOK, gin.H{"totals": h.cart.Totals()})
}

// pendingOrder returns the draft reflection of the current cart, or 204
// when the cart is empty and there is nothing to reflect.
func (h *Handler) pendingOrder(c *gin.Context) {
	draft := h.cart.Reflect(middleware.CashierID(c))
	if draft == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, draft)
}
