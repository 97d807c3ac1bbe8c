package void

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tillpoint/internal/journal"
	"tillpoint/internal/logger"
	"tillpoint/internal/notify"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
	"tillpoint/internal/session"
)

// Machine gates every void behind a freshly verified manager credential
// and a non-empty reason, then reconciles the platform's response into
// the local order state. One machine serves one terminal session.
type Machine struct {
	api     platform.Client
	store   *orders.Store
	journal journal.Repository
	sink    notify.Sink
	sess    session.Service

	mu sync.Mutex
	st state
}

func NewMachine(
	api platform.Client,
	store *orders.Store,
	jr journal.Repository,
	sink notify.Sink,
	sess session.Service,
) *Machine {
	return &Machine{
		api:     api,
		store:   store,
		journal: jr,
		sink:    sink,
		sess:    sess,
		st:      idle{},
	}
}

// State exposes the current phase name for the till UI.
func (m *Machine) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.name()
}

// Request starts a void attempt. The target order must resolve locally;
// otherwise the machine reports the error and stays idle, so no manager
// prompt ever opens for a phantom order.
func (m *Machine) Request(ctx context.Context, target Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.(idle); !ok {
		return ErrVoidInProgress
	}

	order, err := m.store.Find(target.Order)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoTargetOrder, err)
	}

	if target.Type == orders.VoidTransaction && order.FullyVoided() {
		return ErrAlreadyVoided
	}

	m.st = awaitingManagerAuth{target: target}

	logger.FromCtx(ctx).Info("void requested",
		zap.String("type", string(target.Type)),
		zap.String("order_id", order.ID),
	)
	return nil
}

// Authorize verifies the approving manager against the platform. The
// credential must belong to a manager-or-higher role, and a cashier may
// not approve their own void unless they are a super admin. No token is
// stored on any failure; the machine stays in awaiting_manager_auth so
// the prompt can be retried.
func (m *Machine) Authorize(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.st.(awaitingManagerAuth)
	if !ok {
		return ErrNotAwaitingAuth
	}

	log := logger.FromCtx(ctx)

	res, err := m.api.Login(ctx, username, password)
	if err != nil {
		log.Warn("manager authorization rejected", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("manager login: %w", err)
	}

	manager := res.User
	if manager.Role != platform.RoleSuperAdmin {
		if manager.Role == platform.RoleCashier {
			return ErrManagerRole
		}
		if cashier, err := m.sess.Current(); err == nil && cashier.ID == manager.ID {
			// Separation of duties: approval must come from a second
			// principal. Super admins are the only override.
			return ErrSelfApproval
		}
	}

	m.st = awaitingReason{
		target: st.target,
		auth:   Authorization{Token: res.Token, Manager: manager},
	}

	log.Info("void authorized",
		zap.String("manager_id", manager.ID),
		zap.String("role", string(manager.Role)),
	)
	return nil
}

// Submit validates the reason and target items, then submits the void
// with the manager's token. On success the machine reconciles and returns
// to idle. On failure the authorization is discarded unconditionally and
// the machine returns to awaiting_manager_auth, forcing a fresh manager
// login before any retry.
func (m *Machine) Submit(ctx context.Context, reason string, selectedItemIDs []string) (*orders.Order, error) {
	m.mu.Lock()

	st, ok := m.st.(awaitingReason)
	if !ok {
		defer m.mu.Unlock()
		if _, inFlight := m.st.(submitting); inFlight {
			return nil, ErrSubmitInFlight
		}
		return nil, ErrNotAwaitingReason
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		m.mu.Unlock()
		return nil, ErrReasonRequired
	}

	order, err := m.store.Find(st.target.Order)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrNoTargetOrder, err)
	}

	req := platform.VoidRequest{
		Type:   st.target.Type,
		Reason: reason,
		Notes:  nil,
	}
	if st.target.Type == orders.VoidItem {
		itemIDs := resolveItemIDs(order, st.target.ItemIndex, selectedItemIDs)
		if len(itemIDs) == 0 {
			m.mu.Unlock()
			return nil, ErrNoItemsResolved
		}
		for _, id := range itemIDs {
			req.Items = append(req.Items, platform.VoidItemRef{OrderItemID: id})
		}
	}

	// The network call runs outside the lock; the submitting phase keeps
	// a second confirmation from being accepted while this one is in
	// flight.
	m.st = submitting{target: st.target, auth: st.auth}
	m.mu.Unlock()

	log := logger.FromCtx(ctx)
	updated, err := m.api.VoidOrder(ctx, order.ID, st.auth.Token, req)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		// The token dies with the attempt: any retry needs a fresh
		// manager login.
		m.st = awaitingManagerAuth{target: st.target}
		log.Error("void submission failed", zap.String("order_id", order.ID), zap.Error(err))
		m.sink.Push(notify.KindError, "void failed: "+err.Error())
		return nil, fmt.Errorf("submit void: %w", err)
	}

	m.store.Upsert(updated)
	m.store.MergeVoidLogs(updated.VoidLogs)

	if err := m.journal.RecordVoidLogs(ctx, updated.VoidLogs); err != nil {
		log.Warn("void not journaled", zap.String("order_id", updated.ID), zap.Error(err))
	}

	m.st = idle{}
	m.sink.Push(notify.KindVoid, fmt.Sprintf("order %s void approved", updated.Code))

	log.Info("void completed",
		zap.String("order_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.String("manager_id", st.auth.Manager.ID),
	)
	return updated, nil
}

// Cancel abandons the attempt and discards the authorization and target.
// Nothing has reached the platform yet in any cancellable phase, so there
// is no remote state to undo. A submission already in flight cannot be
// cancelled.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, inFlight := m.st.(submitting); inFlight {
		return ErrSubmitInFlight
	}
	m.st = idle{}
	return nil
}

// resolveItemIDs picks the order items a void applies to: the cashier's
// explicit selection when one was made (a deliberately emptied selection
// blocks the void rather than falling back), otherwise the line that
// triggered the request, provided it is still voidable.
func resolveItemIDs(order *orders.Order, itemIndex int, selected []string) []string {
	if selected != nil {
		valid := make([]string, 0, len(selected))
		for _, id := range selected {
			for _, it := range order.Items {
				if it.ID == id && !it.Voided {
					valid = append(valid, id)
					break
				}
			}
		}
		return valid
	}

	if order.FullyVoided() {
		return nil
	}
	if itemIndex < 0 || itemIndex >= len(order.Items) {
		return nil
	}
	if order.Items[itemIndex].Voided {
		return nil
	}
	return []string{order.Items[itemIndex].ID}
}
