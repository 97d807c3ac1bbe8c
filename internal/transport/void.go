package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/orders"
	"tillpoint/internal/void"
)

func (h *Handler) voidState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.voids.State()})
}

type voidRequestBody struct {
	Type      string `json:"type" binding:"required"`
	OrderID   string `json:"orderId"`
	Code      string `json:"code"`
	ItemIndex *int   `json:"itemIndex"`
}

func (h *Handler) requestVoid(c *gin.Context) {
	var req voidRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid void request"})
		return
	}

	var key orders.Key
	switch {
	case req.OrderID != "":
		key = orders.ByID(req.OrderID)
	case req.Code != "":
		key = orders.ByCode(req.Code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId or code is required"})
		return
	}

	var target void.Target
	switch orders.VoidType(req.Type) {
	case orders.VoidTransaction:
		target = void.TransactionTarget(key)
	case orders.VoidItem:
		index := -1
		if req.ItemIndex != nil {
			index = *req.ItemIndex
		}
		target = void.ItemTarget(key, index)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown void type"})
		return
	}

	if err := h.voids.Request(c.Request.Context(), target); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.voids.State()})
}

type authorizeVoidBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) authorizeVoid(c *gin.Context) {
	var req authorizeVoidBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if err := h.voids.Authorize(c.Request.Context(), req.Username, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.voids.State()})
}

// submitVoidBody distinguishes an absent itemIds field (use the line that
// triggered the request) from an explicitly empty one (nothing selected,
// blocked).
type submitVoidBody struct {
	Reason  string   `json:"reason"`
	ItemIDs []string `json:"itemIds"`
}

func (h *Handler) submitVoid(c *gin.Context) {
	var req submitVoidBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid void submission"})
		return
	}

	order, err := h.voids.Submit(c.Request.Context(), req.Reason, req.ItemIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "state": h.voids.State()})
}

func (h *Handler) cancelVoid(c *gin.Context) {
	if err := h.voids.Cancel(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.voids.State()})
}
