package transport

import (
	"tillpoint/internal/cart"
	"tillpoint/internal/checkout"
	"tillpoint/internal/inventory"
	"tillpoint/internal/journal"
	"tillpoint/internal/notify"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
	"tillpoint/internal/session"
	"tillpoint/internal/void"
)

// Handler exposes the terminal's JSON API to the till UI. It owns no
// state of its own; everything lives in the injected services.
type Handler struct {
	cart     *cart.Cart
	api      platform.Client
	store    *orders.Store
	inv      *inventory.Store
	journal  journal.Repository
	notes    *notify.Aggregator
	sess     session.Service
	checkout checkout.Service
	voids    *void.Machine

	lowStockThreshold int
}

func NewHandler(
	c *cart.Cart,
	api platform.Client,
	store *orders.Store,
	inv *inventory.Store,
	jr journal.Repository,
	notes *notify.Aggregator,
	sess session.Service,
	co checkout.Service,
	vm *void.Machine,
	lowStockThreshold int,
) *Handler {
	return &Handler{
		cart:              c,
		api:               api,
		store:             store,
		inv:               inv,
		journal:           jr,
		notes:             notes,
		sess:              sess,
		checkout:          co,
		voids:             vm,
		lowStockThreshold: lowStockThreshold,
	}
}
