// Package rarity defines rarity identifiers and the strict total order that
// rarities progress through.
package rarity

import (
	"errors"
	"fmt"
)

// ID identifies a rarity tier.
type ID string

// None is the sentinel rarity of an item that has not been obtained.
// It is never part of an Order.
const None ID = "none"

// Built-in rarity identifiers, lowest to highest.
const (
	Common    ID = "common"
	Uncommon  ID = "uncommon"
	Rare      ID = "rare"
	Epic      ID = "epic"
	Legendary ID = "legendary"
	Mythic    ID = "mythic"
	Titan     ID = "titan"
	Angel     ID = "angel"
)

// Order is an immutable strict total order of rarity IDs.
//
// The zero value is an empty order: every lookup reports absence.
type Order struct {
	ids   []ID
	index map[ID]int
}

// NewOrder builds an Order from ids, lowest first.
//
// Precondition: ids must be non-empty, unique, and must not contain None or "".
// Postcondition: Returns an Order whose Next walks ids in the given sequence, or a non-nil error.
func NewOrder(ids ...ID) (Order, error) {
	if len(ids) == 0 {
		return Order{}, errors.New("rarity order must not be empty")
	}
	o := Order{
		ids:   make([]ID, len(ids)),
		index: make(map[ID]int, len(ids)),
	}
	for i, id := range ids {
		if id == "" {
			return Order{}, fmt.Errorf("rarity order position %d: empty id", i)
		}
		if id == None {
			return Order{}, fmt.Errorf("rarity order position %d: %q is a sentinel, not a rarity", i, None)
		}
		if prev, dup := o.index[id]; dup {
			return Order{}, fmt.Errorf("rarity order: %q appears at positions %d and %d", id, prev, i)
		}
		o.ids[i] = id
		o.index[id] = i
	}
	return o, nil
}

// MustOrder is NewOrder that panics on error. Intended for package-level tables.
func MustOrder(ids ...ID) Order {
	o, err := NewOrder(ids...)
	if err != nil {
		panic(err)
	}
	return o
}

var defaultOrder = MustOrder(Common, Uncommon, Rare, Epic, Legendary, Mythic, Titan, Angel)

// Default returns the built-in progression common < uncommon < … < angel.
func Default() Order {
	return defaultOrder
}

// Len returns the number of rarities in the order.
func (o Order) Len() int { return len(o.ids) }

// IDs returns a copy of the ordered IDs, lowest first.
func (o Order) IDs() []ID {
	out := make([]ID, len(o.ids))
	copy(out, o.ids)
	return out
}

// Contains reports whether id is part of the order.
func (o Order) Contains(id ID) bool {
	_, ok := o.index[id]
	return ok
}

// Index returns the zero-based position of id.
//
// Postcondition: ok is false when id is not in the order (including None).
func (o Order) Index(id ID) (int, bool) {
	i, ok := o.index[id]
	return i, ok
}

// Next returns the successor of id.
//
// Postcondition: ok is false when id is the highest rarity or is not in the order.
func (o Order) Next(id ID) (ID, bool) {
	i, ok := o.index[id]
	if !ok || i+1 >= len(o.ids) {
		return "", false
	}
	return o.ids[i+1], true
}

// Compare returns -1, 0 or +1 as a ranks below, equal to, or above b.
// IDs outside the order (None included) rank below every ordered rarity and
// compare equal to each other.
func (o Order) Compare(a, b ID) int {
	ia, oka := o.index[a]
	ib, okb := o.index[b]
	if !oka {
		ia = -1
	}
	if !okb {
		ib = -1
	}
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	default:
		return 0
	}
}

// Above reports whether a is an ordered rarity strictly higher than b.
func (o Order) Above(a, b ID) bool {
	return o.Contains(a) && o.Compare(a, b) > 0
}
