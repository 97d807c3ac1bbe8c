package void

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/journal"
	"tillpoint/internal/notify"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
)

// --- Mocks ---

type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) Login(ctx context.Context, username, password string) (*platform.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.LoginResult), args.Error(1)
}

func (m *MockPlatform) CreateOrder(ctx context.Context, req platform.CreateOrderRequest) (*orders.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockPlatform) ListOrders(ctx context.Context, q platform.ListOrdersQuery) ([]*orders.Order, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orders.Order), args.Error(1)
}

func (m *MockPlatform) VoidOrder(ctx context.Context, orderID, managerToken string, req platform.VoidRequest) (*orders.Order, error) {
	args := m.Called(ctx, orderID, managerToken, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockPlatform) ListVoidLogs(ctx context.Context, q platform.ListVoidLogsQuery) ([]orders.VoidLog, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orders.VoidLog), args.Error(1)
}

func (m *MockPlatform) SetSessionToken(token string) {
	m.Called(token)
}

type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) RecordSale(ctx context.Context, o *orders.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockJournal) RecordVoidLogs(ctx context.Context, logs []orders.VoidLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

func (m *MockJournal) SaleByCode(ctx context.Context, code string) (*journal.SaleRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.SaleRecord), args.Error(1)
}

func (m *MockJournal) DaySummary(ctx context.Context, day time.Time, cashierID string) (*journal.DaySummary, error) {
	args := m.Called(ctx, day, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.DaySummary), args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Login(ctx context.Context, username, password string) (string, *platform.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*platform.User), args.Error(2)
}

func (m *MockSession) Current() (*platform.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.User), args.Error(1)
}

func (m *MockSession) Logout() {
	m.Called()
}

// --- Fixtures ---

type fixture struct {
	api     *MockPlatform
	store   *orders.Store
	journal *MockJournal
	sink    *notify.Aggregator
	sess    *MockSession
	machine *Machine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		api:     new(MockPlatform),
		store:   orders.NewStore(),
		journal: new(MockJournal),
		sink:    notify.NewAggregator(),
		sess:    new(MockSession),
	}
	f.store.Upsert(&orders.Order{
		ID:        "ord-1",
		Code:      "A-001",
		CashierID: "cash-1",
		Status:    orders.StatusPaid,
		Items: []orders.OrderItem{
			{ID: "oi-1", Name: "Latte", Quantity: 1},
			{ID: "oi-2", Name: "Mocha", Quantity: 2},
		},
	})
	f.sess.On("Current").Return(&platform.User{ID: "cash-1", Username: "cashier1", Role: platform.RoleCashier}, nil).Maybe()
	f.machine = NewMachine(f.api, f.store, f.journal, f.sink, f.sess)
	return f
}

func (f *fixture) managerLogin(username, id string, role platform.Role) {
	f.api.On("Login", mock.Anything, username, "pw").Return(&platform.LoginResult{
		Token: "mgr-tok",
		User:  &platform.User{ID: id, Username: username, Role: role},
	}, nil)
}

// authorize drives the machine to awaiting_reason with a manager token.
func (f *fixture) authorize(t *testing.T, target Target) {
	t.Helper()
	f.managerLogin("mgr2", "mgr-2", platform.RoleManager)
	require.NoError(t, f.machine.Request(context.Background(), target))
	require.NoError(t, f.machine.Authorize(context.Background(), "mgr2", "pw"))
}

// --- Tests ---

func TestMachine_Request(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		err := f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ord-1")))
		require.NoError(t, err)
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())
	})

	t.Run("Resolves by code too", func(t *testing.T) {
		f := newFixture(t)
		err := f.machine.Request(context.Background(), ItemTarget(orders.ByCode("A-001"), 0))
		require.NoError(t, err)
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())
	})

	t.Run("Unknown order stays idle", func(t *testing.T) {
		f := newFixture(t)
		err := f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ghost")))
		assert.ErrorIs(t, err, ErrNoTargetOrder)
		assert.Equal(t, "idle", f.machine.State())
	})

	t.Run("Already fully voided", func(t *testing.T) {
		f := newFixture(t)
		f.store.Upsert(&orders.Order{ID: "ord-2", Status: orders.StatusVoided})

		err := f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ord-2")))
		assert.ErrorIs(t, err, ErrAlreadyVoided)
		assert.Equal(t, "idle", f.machine.State())
	})

	t.Run("One void at a time", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ord-1"))))

		err := f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ord-1")))
		assert.ErrorIs(t, err, ErrVoidInProgress)
	})
}

func TestMachine_Authorize(t *testing.T) {
	target := TransactionTarget(orders.ByID("ord-1"))

	t.Run("Manager approved", func(t *testing.T) {
		f := newFixture(t)
		f.managerLogin("mgr2", "mgr-2", platform.RoleManager)
		require.NoError(t, f.machine.Request(context.Background(), target))

		err := f.machine.Authorize(context.Background(), "mgr2", "pw")
		require.NoError(t, err)
		assert.Equal(t, "awaiting_reason", f.machine.State())
	})

	t.Run("Without a pending request", func(t *testing.T) {
		f := newFixture(t)
		err := f.machine.Authorize(context.Background(), "mgr2", "pw")
		assert.ErrorIs(t, err, ErrNotAwaitingAuth)
	})

	t.Run("Bad credentials keep the prompt open", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("Login", mock.Anything, "mgr2", "pw").Return(nil, errors.New("invalid credentials"))
		require.NoError(t, f.machine.Request(context.Background(), target))

		err := f.machine.Authorize(context.Background(), "mgr2", "pw")
		require.Error(t, err)
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())

		// No token was stored: submission is impossible.
		_, err = f.machine.Submit(context.Background(), "reason", nil)
		assert.ErrorIs(t, err, ErrNotAwaitingReason)
		f.api.AssertNotCalled(t, "VoidOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cashier role rejected", func(t *testing.T) {
		f := newFixture(t)
		f.managerLogin("cash2", "cash-2", platform.RoleCashier)
		require.NoError(t, f.machine.Request(context.Background(), target))

		err := f.machine.Authorize(context.Background(), "cash2", "pw")
		assert.ErrorIs(t, err, ErrManagerRole)
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())
	})

	t.Run("Self-approval rejected", func(t *testing.T) {
		// The approving manager is the signed-in cashier: separation of
		// duties blocks it even though the role is MANAGER.
		f := newFixture(t)
		f.managerLogin("cashier1", "cash-1", platform.RoleManager)
		require.NoError(t, f.machine.Request(context.Background(), target))

		err := f.machine.Authorize(context.Background(), "cashier1", "pw")
		assert.ErrorIs(t, err, ErrSelfApproval)
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())
	})

	t.Run("Super admin may self-approve", func(t *testing.T) {
		f := newFixture(t)
		f.managerLogin("cashier1", "cash-1", platform.RoleSuperAdmin)
		require.NoError(t, f.machine.Request(context.Background(), target))

		err := f.machine.Authorize(context.Background(), "cashier1", "pw")
		require.NoError(t, err)
		assert.Equal(t, "awaiting_reason", f.machine.State())
	})
}

func TestMachine_Submit(t *testing.T) {
	txTarget := TransactionTarget(orders.ByID("ord-1"))

	t.Run("Transaction void success", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, txTarget)

		voided := &orders.Order{
			ID:     "ord-1",
			Code:   "A-001",
			Status: orders.StatusVoided,
			VoidLogs: []orders.VoidLog{{
				ID:        "vl-1",
				OrderID:   "ord-1",
				Type:      orders.VoidTransaction,
				Reason:    "customer walked out",
				CashierID: "cash-1",
				ManagerID: "mgr-2",
			}},
		}
		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.MatchedBy(func(req platform.VoidRequest) bool {
			return req.Type == orders.VoidTransaction &&
				req.Reason == "customer walked out" &&
				req.Notes == nil &&
				len(req.Items) == 0
		})).Return(voided, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, voided.VoidLogs).Return(nil)

		got, err := f.machine.Submit(context.Background(), "  customer walked out  ", nil)
		require.NoError(t, err)
		assert.Equal(t, orders.StatusVoided, got.Status)

		// Machine reset; authorization and target cleared.
		assert.Equal(t, "idle", f.machine.State())
		_, err = f.machine.Submit(context.Background(), "again", nil)
		assert.ErrorIs(t, err, ErrNotAwaitingReason)

		// Local views reconciled: transaction shows cancelled, one log.
		txs := f.store.Transactions("")
		require.Len(t, txs, 1)
		assert.Equal(t, orders.LabelCancelled, txs[0].Label)
		require.Len(t, f.store.VoidLogs(""), 1)

		f.api.AssertExpectations(t)
		f.journal.AssertExpectations(t)
	})

	t.Run("Empty reason blocked before any call", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, txTarget)

		_, err := f.machine.Submit(context.Background(), "   ", nil)
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Equal(t, "awaiting_reason", f.machine.State())
		f.api.AssertNotCalled(t, "VoidOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Item void falls back to the triggering line", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, ItemTarget(orders.ByID("ord-1"), 1))

		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.MatchedBy(func(req platform.VoidRequest) bool {
			return req.Type == orders.VoidItem &&
				len(req.Items) == 1 &&
				req.Items[0].OrderItemID == "oi-2"
		})).Return(&orders.Order{ID: "ord-1", Code: "A-001", Status: orders.StatusPaid}, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, mock.Anything).Return(nil)

		_, err := f.machine.Submit(context.Background(), "wrong drink", nil)
		assert.NoError(t, err)
		f.api.AssertExpectations(t)
	})

	t.Run("Explicit selection wins over the fallback", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, ItemTarget(orders.ByID("ord-1"), 1))

		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.MatchedBy(func(req platform.VoidRequest) bool {
			return len(req.Items) == 2
		})).Return(&orders.Order{ID: "ord-1", Code: "A-001", Status: orders.StatusPaid}, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, mock.Anything).Return(nil)

		_, err := f.machine.Submit(context.Background(), "both wrong", []string{"oi-1", "oi-2"})
		assert.NoError(t, err)
	})

	t.Run("Deselecting every item blocks submission", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, ItemTarget(orders.ByID("ord-1"), 0))

		_, err := f.machine.Submit(context.Background(), "reason", []string{})
		assert.ErrorIs(t, err, ErrNoItemsResolved)
		// Reason dialog stays open for correction.
		assert.Equal(t, "awaiting_reason", f.machine.State())
		f.api.AssertNotCalled(t, "VoidOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already-voided fallback line blocks submission", func(t *testing.T) {
		f := newFixture(t)
		f.store.Upsert(&orders.Order{
			ID:     "ord-3",
			Status: orders.StatusPaid,
			Items:  []orders.OrderItem{{ID: "oi-9", Voided: true}, {ID: "oi-10"}},
		})
		f.authorize(t, ItemTarget(orders.ByID("ord-3"), 0))

		_, err := f.machine.Submit(context.Background(), "reason", nil)
		assert.ErrorIs(t, err, ErrNoItemsResolved)
	})

	t.Run("Selection filtered to voidable items", func(t *testing.T) {
		f := newFixture(t)
		f.store.Upsert(&orders.Order{
			ID:     "ord-3",
			Status: orders.StatusPaid,
			Items:  []orders.OrderItem{{ID: "oi-9", Voided: true}, {ID: "oi-10"}},
		})
		f.authorize(t, ItemTarget(orders.ByID("ord-3"), -1))

		f.api.On("VoidOrder", mock.Anything, "ord-3", "mgr-tok", mock.MatchedBy(func(req platform.VoidRequest) bool {
			return len(req.Items) == 1 && req.Items[0].OrderItemID == "oi-10"
		})).Return(&orders.Order{ID: "ord-3", Status: orders.StatusPaid}, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, mock.Anything).Return(nil)

		_, err := f.machine.Submit(context.Background(), "spilled", []string{"oi-9", "oi-10"})
		assert.NoError(t, err)
	})

	t.Run("Platform failure discards the authorization", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, txTarget)

		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := f.machine.Submit(context.Background(), "reason", nil)
		require.Error(t, err)

		// Back to the manager prompt: the token died with the attempt.
		assert.Equal(t, "awaiting_manager_auth", f.machine.State())
		_, err = f.machine.Submit(context.Background(), "reason", nil)
		assert.ErrorIs(t, err, ErrNotAwaitingReason)

		// Local state untouched by the failed void.
		o, err := f.store.Find(orders.ByID("ord-1"))
		require.NoError(t, err)
		assert.Equal(t, orders.StatusPaid, o.Status)
	})

	t.Run("Journal failure does not fail the void", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, txTarget)

		voided := &orders.Order{ID: "ord-1", Code: "A-001", Status: orders.StatusVoided,
			VoidLogs: []orders.VoidLog{{ID: "vl-1"}}}
		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.Anything).Return(voided, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.machine.Submit(context.Background(), "reason", nil)
		assert.NoError(t, err)
		assert.Equal(t, "idle", f.machine.State())
	})

	t.Run("Repeated merge of the same logs stays deduplicated", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, txTarget)

		voided := &orders.Order{ID: "ord-1", Code: "A-001", Status: orders.StatusVoided,
			VoidLogs: []orders.VoidLog{{ID: "vl-1", Reason: "first"}}}
		f.api.On("VoidOrder", mock.Anything, "ord-1", "mgr-tok", mock.Anything).Return(voided, nil)
		f.journal.On("RecordVoidLogs", mock.Anything, mock.Anything).Return(nil)

		_, err := f.machine.Submit(context.Background(), "reason", nil)
		require.NoError(t, err)

		// A later refresh returns the same log entry again.
		f.store.MergeVoidLogs([]orders.VoidLog{{ID: "vl-1", Reason: "first"}})
		assert.Len(t, f.store.VoidLogs(""), 1)
	})
}

func TestMachine_Cancel(t *testing.T) {
	t.Run("From manager prompt", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.machine.Request(context.Background(), TransactionTarget(orders.ByID("ord-1"))))

		require.NoError(t, f.machine.Cancel())
		assert.Equal(t, "idle", f.machine.State())
	})

	t.Run("From reason prompt discards the token", func(t *testing.T) {
		f := newFixture(t)
		f.authorize(t, TransactionTarget(orders.ByID("ord-1")))

		require.NoError(t, f.machine.Cancel())
		assert.Equal(t, "idle", f.machine.State())

		_, err := f.machine.Submit(context.Background(), "reason", nil)
		assert.ErrorIs(t, err, ErrNotAwaitingReason)
		f.api.AssertNotCalled(t, "VoidOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Idle cancel is a no-op", func(t *testing.T) {
		f := newFixture(t)
		assert.NoError(t, f.machine.Cancel())
	})
}
