package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tillpoint/internal/inventory"
)

type Kind string

const (
	KindLowStock Kind = "LOW_STOCK"
	KindOrder    Kind = "ORDER"
	KindVoid     Kind = "VOID"
	KindError    Kind = "ERROR"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sink receives user-facing notifications from the workflows.
type Sink interface {
	Push(kind Kind, message string)
}

const maxKept = 100

// Aggregator collects till notifications. Rendering them is the UI's
// problem; the aggregator only derives and retains the feed.
type Aggregator struct {
	mu    sync.Mutex
	items []Notification
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Push(kind Kind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = append([]Notification{{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}}, a.items...)

	if len(a.items) > maxKept {
		a.items = a.items[:maxKept]
	}
}

func (a *Aggregator) List() []Notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Notification, len(a.items))
	copy(out, a.items)
	return out
}

// SweepLowStock derives a low-stock notification per item at or below the
// threshold.
func (a *Aggregator) SweepLowStock(inv *inventory.Store, threshold int) {
	for _, it := range inv.LowStock(threshold) {
		a.Push(KindLowStock, fmt.Sprintf("%s is low on stock (%d left)", it.Name, it.Quantity))
	}
}
