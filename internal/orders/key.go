package orders

// Key identifies an order for reconciliation. Different till views key
// orders by different fields, so a match is explicit about which one it
// uses instead of probing fields ad hoc.
type Key struct {
	id   string
	code string
}

func ByID(id string) Key {
	return Key{id: id}
}

func ByCode(code string) Key {
	return Key{code: code}
}

func (k Key) IsZero() bool {
	return k.id == "" && k.code == ""
}

func (k Key) Matches(o *Order) bool {
	if o == nil {
		return false
	}
	if k.id != "" {
		return o.ID == k.id
	}
	return k.code != "" && o.Code == k.code
}

// SameOrder reports whether two orders refer to the same platform entity,
// matching by identifier or by human-readable code.
func SameOrder(a, b *Order) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID != "" && a.ID == b.ID {
		return true
	}
	return a.Code != "" && a.Code == b.Code
}
