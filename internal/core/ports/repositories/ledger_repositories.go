package repositories

import "github.com/SscSPs/drive_thru_order_app/internal/core/domain"

// LedgerReader defines read operations over the session ledger.
type LedgerReader interface {
	// Snapshot returns a deep copy of every entry in append order.
	Snapshot() []domain.HistoryEntry

	// FindOrder returns the order with the given id if it exists and has not been cancelled.
	FindOrder(id int) (domain.HistoryEntry, bool)

	// ActiveOrders returns every order entry not yet cancelled, in append order.
	ActiveOrders() []domain.HistoryEntry
}

// LedgerWriter defines the single mutation the ledger supports.
type LedgerWriter interface {
	// Append assigns the next id, timestamps the entry, stores it and returns a copy.
	// cancelledOrders lists whole orders voided by a cancel entry.
	Append(action domain.ActionType, lines []domain.OrderLine, displayMessage *string, cancelledOrders []int) domain.HistoryEntry
}

// LedgerRepositoryFacade combines ledger reads and writes.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
