package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tillpoint/internal/cart"
	"tillpoint/internal/journal"
	"tillpoint/internal/logger"
	"tillpoint/internal/notify"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
	"tillpoint/internal/session"

	"tillpoint/internal/inventory"
)

// Service turns the in-memory cart plus a payment result into a persisted
// platform order, then resets the transient till state.
type Service interface {
	Finalize(ctx context.Context, result PaymentResult) (*orders.Order, error)
}

type service struct {
	cart    *cart.Cart
	api     platform.Client
	store   *orders.Store
	inv     *inventory.Store
	journal journal.Repository
	sink    notify.Sink
	sess    session.Service
}

func NewService(
	c *cart.Cart,
	api platform.Client,
	store *orders.Store,
	inv *inventory.Store,
	jr journal.Repository,
	sink notify.Sink,
	sess session.Service,
) Service {
	return &service{
		cart:    c,
		api:     api,
		store:   store,
		inv:     inv,
		journal: jr,
		sink:    sink,
		sess:    sess,
	}
}

// Finalize submits the cart as an order. On failure the cart and payment
// selections are left untouched so the cashier can retry. On success the
// pending reflection disappears before the authoritative order is
// inserted, and stock is decremented only after the platform confirms.
func (s *service) Finalize(ctx context.Context, result PaymentResult) (*orders.Order, error) {
	log := logger.FromCtx(ctx)

	cashier, err := s.sess.Current()
	if err != nil {
		return nil, ErrNoCashier
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, cart.ErrCartEmpty
	}

	method, err := NormalizeMethod(result.Method)
	if err != nil {
		return nil, err
	}

	totals := s.cart.Totals()
	disc := s.cart.Discount()

	tendered := result.Tendered
	if tendered.IsZero() {
		// Card and wallet payments settle exactly.
		tendered = totals.Total
	}

	req := platform.CreateOrderRequest{
		Items:        make([]platform.CreateOrderItem, 0, len(items)),
		DiscountPct:  disc.Pct,
		DiscountType: disc.Type,
		Coupon:       disc.Coupon,
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Payment: platform.CreateOrderPayment{
			Method:    method,
			Tendered:  tendered,
			Total:     totals.Total,
			Reference: result.reference(),
			Details:   result.Details,
		},
	}
	for _, li := range items {
		req.Items = append(req.Items, platform.CreateOrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.UnitPrice(),
			Quantity:  li.Quantity,
			Size:      li.Size,
			AddOns:    li.AddOns,
			Notes:     li.Notes,
		})
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		log.Error("checkout submission failed", zap.Error(err))
		s.sink.Push(notify.KindError, "checkout failed: "+err.Error())
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Clearing the cart drops the pending reflection before the real
	// order appears, so monitoring views never show both at once.
	s.cart.Clear()
	s.store.Upsert(order)
	s.store.MergeVoidLogs(order.VoidLogs)

	for _, li := range items {
		if err := s.inv.Decrement(li.ProductID, li.Quantity); err != nil {
			log.Warn("stock decrement skipped",
				zap.String("product_id", li.ProductID),
				zap.Error(err),
			)
		}
	}

	if err := s.journal.RecordSale(ctx, order); err != nil {
		log.Warn("sale not journaled", zap.String("order_id", order.ID), zap.Error(err))
	}

	s.sink.Push(notify.KindOrder, fmt.Sprintf("order %s completed, receipt ready", order.Code))

	log.Info("checkout finalized",
		zap.String("order_id", order.ID),
		zap.String("code", order.Code),
		zap.String("cashier_id", cashier.ID),
		zap.String("method", method),
		zap.String("total", totals.Total.StringFixed(2)),
	)
	return order, nil
}
