package domain

import (
	"errors"
	"time"
)

// MovementKind names what changed a sweet's stock.
type MovementKind string

const (
	MovementAdded     MovementKind = "added"
	MovementPurchased MovementKind = "purchased"
	MovementRestocked MovementKind = "restocked"
	MovementAdjusted  MovementKind = "adjusted"
	MovementRemoved   MovementKind = "removed"
)

// Valid reports whether k is one of the known movement kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementAdded, MovementPurchased, MovementRestocked, MovementAdjusted, MovementRemoved:
		return true
	}
	return false
}

var ErrInvalidMovement = errors.New("invalid stock movement")

// StockMovement is one entry in a sweet's stock history. Amount is the
// number of units moved and is zero for adjustments and removals, where
// only the resulting quantity is known.
type StockMovement struct {
	SweetID       string       `json:"sweet_id"`
	Kind          MovementKind `json:"kind"`
	Amount        int          `json:"amount"`
	QuantityAfter int          `json:"quantity_after"`
	Actor         string       `json:"actor"`
	At            time.Time    `json:"at"`
}
