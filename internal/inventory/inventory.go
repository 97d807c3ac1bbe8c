package inventory

import (
	"errors"
	"sync"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Item is one product's stock count as the terminal last knew it.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// Store mirrors product stock counts for browsing and for post-checkout
// decrements. The platform owns real stock; this mirror only keeps the
// till display current between refreshes.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Item
}

func NewStore() *Store {
	return &Store{items: make(map[string]*Item)}
}

// Seed replaces the mirror wholesale, e.g. from a platform refresh.
func (s *Store) Seed(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*Item, len(items))
	for _, it := range items {
		copied := it
		s.items[it.ProductID] = &copied
	}
}

// Decrement reduces a product's count after a confirmed sale. Counts
// clamp at zero; the platform's number wins on the next refresh.
func (s *Store) Decrement(productID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[productID]
	if !ok {
		return ErrProductNotFound
	}
	it.Quantity -= qty
	if it.Quantity < 0 {
		it.Quantity = 0
	}
	return nil
}

func (s *Store) Get(productID string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[productID]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	return out
}

// LowStock returns items at or below the threshold.
func (s *Store) LowStock(threshold int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0)
	for _, it := range s.items {
		if it.Quantity <= threshold {
			out = append(out, *it)
		}
	}
	return out
}
