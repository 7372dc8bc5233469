package domain

import (
	"fmt"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
)

// PlaceOrderRequest asks for a new order made of Lines.
type PlaceOrderRequest struct {
	Lines []OrderLine
}

// CancelRequest is one of three shapes, resolved in this precedence:
// CancelAll, then OrderNumber, then Lines.
type CancelRequest struct {
	Lines       []OrderLine
	OrderNumber *int
	CancelAll   bool
}

// Action is a parsed customer intent. Exactly one of Place or Cancel is set.
type Action struct {
	Place  *PlaceOrderRequest
	Cancel *CancelRequest
}

// Validate enforces that exactly one request shape is present.
func (a Action) Validate() error {
	switch {
	case a.Place != nil && a.Cancel != nil:
		return fmt.Errorf("%w: action must either place or cancel, not both", apperrors.ErrValidation)
	case a.Place == nil && a.Cancel == nil:
		return fmt.Errorf("%w: action must place or cancel items", apperrors.ErrValidation)
	}
	return nil
}

// ResultStatus is the outcome of an action.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// ActionResult is the envelope returned for every processed action.
type ActionResult struct {
	Status         ResultStatus
	Message        string
	DisplayMessage string
	History        []HistoryEntry
	Totals         Totals
}
