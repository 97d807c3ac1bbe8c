package void

import "errors"

var (
	// -- Workflow state --
	ErrVoidInProgress    = errors.New("another void is already in progress")
	ErrNoTargetOrder     = errors.New("void target order not found")
	ErrNotAwaitingAuth   = errors.New("no void is awaiting manager authorization")
	ErrNotAwaitingReason = errors.New("no authorized void is awaiting a reason")
	ErrSubmitInFlight    = errors.New("void submission already in flight")

	// -- Authorization --
	ErrManagerRole  = errors.New("approver must hold a manager role")
	ErrSelfApproval = errors.New("a cashier cannot approve their own void")

	// -- Validation --
	ErrReasonRequired  = errors.New("void reason is required")
	ErrNoItemsResolved = errors.New("no voidable items selected")
	ErrAlreadyVoided   = errors.New("order is already fully voided")
)
