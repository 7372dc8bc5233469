package domain

import (
	"strings"
	"time"
)

// ActionType indicates whether a history entry places or cancels items.
type ActionType string

const (
	ActionOrder  ActionType = "order"
	ActionCancel ActionType = "cancel"
)

// HistoryEntry is one immutable record in the session ledger.
type HistoryEntry struct {
	ID             int         `json:"id"`
	ActionType     ActionType  `json:"action_type"`
	Items          []OrderLine `json:"items"`
	Timestamp      time.Time   `json:"timestamp"`
	DisplayMessage *string     `json:"display_message,omitempty"`
	// CancelledOrders holds the ids of whole orders this cancel entry voided.
	// Empty for orders and for cancellations of loose items.
	CancelledOrders []int `json:"cancelled_orders,omitempty"`
}

// IsCancelAll reports whether the entry is a cancel-all summary.
func (e HistoryEntry) IsCancelAll() bool {
	return e.ActionType == ActionCancel && len(e.Items) == 0
}

// Clone returns a deep copy so callers can never alias ledger-owned slices.
func (e HistoryEntry) Clone() HistoryEntry {
	out := e
	if e.Items != nil {
		out.Items = make([]OrderLine, len(e.Items))
		copy(out.Items, e.Items)
	}
	if e.CancelledOrders != nil {
		out.CancelledOrders = make([]int, len(e.CancelledOrders))
		copy(out.CancelledOrders, e.CancelledOrders)
	}
	if e.DisplayMessage != nil {
		msg := *e.DisplayMessage
		out.DisplayMessage = &msg
	}
	return out
}

// FormatLines joins lines as "1 burger, 2 drink".
func FormatLines(lines []OrderLine) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.String()
	}
	return strings.Join(parts, ", ")
}
