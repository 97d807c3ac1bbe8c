package orders

import (
	"sync"
)

// Store holds the terminal's in-memory order, transaction and void-log
// collections. The platform stays the source of truth; the store only
// mirrors what the platform last returned.
type Store struct {
	mu       sync.RWMutex
	orders   []*Order
	voidLogs []VoidLog
}

func NewStore() *Store {
	return &Store{}
}

// Upsert replaces the matching order (by identifier or code) or, when no
// match exists, prepends the order so the newest sale lists first.
func (s *Store) Upsert(o *Order) {
	if o == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.orders {
		if SameOrder(existing, o) {
			s.orders[i] = o
			return
		}
	}
	s.orders = append([]*Order{o}, s.orders...)
}

// Find returns the order matching the key, or ErrOrderNotFound.
func (s *Store) Find(k Key) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if k.Matches(o) {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// Orders returns orders, scoped to one cashier when cashierID is non-empty.
func (s *Store) Orders(cashierID string) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Order, 0, len(s.orders))
	for _, o := range s.orders {
		if cashierID != "" && o.CashierID != cashierID {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Transactions returns the transaction view of the stored orders.
func (s *Store) Transactions(cashierID string) []*Transaction {
	orders := s.Orders(cashierID)

	out := make([]*Transaction, 0, len(orders))
	for _, o := range orders {
		out = append(out, MapTransaction(o))
	}
	return out
}

// MergeVoidLogs folds platform void logs into the local collection,
// deduplicated by identifier. An entry with a known identifier supersedes
// the stored one rather than duplicating it. Entries without an
// identifier are dropped. Returns how many entries were merged.
func (s *Store) MergeVoidLogs(logs []VoidLog) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := 0
	for _, incoming := range logs {
		if incoming.ID == "" {
			continue
		}

		replaced := false
		for i, existing := range s.voidLogs {
			if existing.ID == incoming.ID {
				s.voidLogs[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			s.voidLogs = append(s.voidLogs, incoming)
		}
		merged++
	}
	return merged
}

// VoidLogs returns void logs, scoped to voids requested by one cashier
// when cashierID is non-empty.
func (s *Store) VoidLogs(cashierID string) []VoidLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]VoidLog, 0, len(s.voidLogs))
	for _, vl := range s.voidLogs {
		if cashierID != "" && vl.CashierID != cashierID {
			continue
		}
		out = append(out, vl)
	}
	return out
}
