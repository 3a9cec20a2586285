package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction is the side of the CFD the taker opens.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// ParseDirection validates a wire-level direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionLong, DirectionShort:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// FlowState is the confirmation dialog state machine.
//
//	Idle -> AwaitingConfirmation (direction button pressed)
//	AwaitingConfirmation -> Submitting (confirmed)
//	Submitting -> Idle (success)
//	any -> Idle (dialog closed / cancel)
type FlowState string

const (
	FlowIdle                 FlowState = "idle"
	FlowAwaitingConfirmation FlowState = "awaiting_confirmation"
	FlowSubmitting           FlowState = "submitting"
)

// OrderRequest is the submission payload sent to the taker daemon.
type OrderRequest struct {
	ClientOrderID string           `json:"client_order_id"`
	OrderID       string           `json:"order_id"` // Maker offer being taken.
	Symbol        string           `json:"symbol"`
	Quantity      int64            `json:"quantity"`
	Direction     Direction        `json:"direction"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Leverage      int              `json:"leverage"`
}
