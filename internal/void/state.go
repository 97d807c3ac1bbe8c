package void

import (
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
)

// Target describes the in-flight void request: what is being voided and,
// for item voids, which line originally triggered it. It exists only
// between "void requested" and "void confirmed or cancelled".
type Target struct {
	Type      orders.VoidType
	Order     orders.Key
	ItemIndex int
}

// TransactionTarget voids the whole order.
func TransactionTarget(key orders.Key) Target {
	return Target{Type: orders.VoidTransaction, Order: key, ItemIndex: -1}
}

// ItemTarget voids items on the order; itemIndex is the line that
// triggered the request and serves as the single-item fallback when the
// cashier selects nothing explicitly.
func ItemTarget(key orders.Key, itemIndex int) Target {
	return Target{Type: orders.VoidItem, Order: key, ItemIndex: itemIndex}
}

// Authorization is the short-lived manager approval, scoped to a single
// void attempt. It is discarded as soon as the attempt finishes, whatever
// the outcome, and is never persisted.
type Authorization struct {
	Token   string
	Manager *platform.User
}

// The machine's phases form a sum type: each phase carries exactly the
// data valid in that phase, so impossible combinations (a reason prompt
// with no authorization behind it) cannot be represented.
type state interface {
	name() string
}

type idle struct{}

type awaitingManagerAuth struct {
	target Target
}

type awaitingReason struct {
	target Target
	auth   Authorization
}

type submitting struct {
	target Target
	auth   Authorization
}

func (idle) name() string                { return "idle" }
func (awaitingManagerAuth) name() string { return "awaiting_manager_auth" }
func (awaitingReason) name() string      { return "awaiting_reason" }
func (submitting) name() string          { return "submitting" }
