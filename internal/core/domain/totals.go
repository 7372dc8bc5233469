package domain

import "fmt"

// Totals maps each item kind to its current net quantity.
type Totals map[ItemKind]int

// NewTotals returns totals with every catalog kind present at zero.
func NewTotals() Totals {
	t := make(Totals, len(ItemKinds))
	for _, k := range ItemKinds {
		t[k] = 0
	}
	return t
}

// Clone copies the totals.
func (t Totals) Clone() Totals {
	out := make(Totals, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Apply performs one fold step for entry.
//
// Orders add, cancellations subtract clamped at zero, and a cancel-all entry
// (no lines) resets every kind.
func (t Totals) Apply(entry HistoryEntry) {
	switch entry.ActionType {
	case ActionOrder:
		for _, line := range entry.Items {
			t[line.ItemType] += line.Quantity
		}
	case ActionCancel:
		if entry.IsCancelAll() {
			t.Reset()
			return
		}
		for _, line := range entry.Items {
			if t[line.ItemType] >= line.Quantity {
				t[line.ItemType] -= line.Quantity
			} else {
				t[line.ItemType] = 0
			}
		}
	}
}

// Reset zeroes every catalog kind.
func (t Totals) Reset() {
	for _, k := range ItemKinds {
		t[k] = 0
	}
}

// Check returns an error naming the first negative total, if any.
func (t Totals) Check() error {
	for _, k := range ItemKinds {
		if t[k] < 0 {
			return fmt.Errorf("total for %s is negative: %d", k, t[k])
		}
	}
	return nil
}

// Recompute folds the full history from empty. It is the authoritative
// definition of the totals; incremental maintenance must always agree with it.
func Recompute(history []HistoryEntry) Totals {
	t := NewTotals()
	for _, entry := range history {
		t.Apply(entry)
	}
	return t
}
