package models

import "time"

// HistoryEntry is the archived row of one ledger entry.
type HistoryEntry struct {
	SessionID       string    `json:"sessionID"` // PK part 1
	EntryID         int       `json:"entryID"`   // PK part 2, ledger id within the session
	ActionType      string    `json:"actionType"`
	Items           []byte    `json:"items"` // JSONB array of {item_type, quantity}
	DisplayMessage  *string   `json:"displayMessage"`
	CancelledOrders []int32   `json:"cancelledOrders"` // INTEGER[]
	CreatedAt       time.Time `json:"createdAt"`
	ArchivedAt      time.Time `json:"archivedAt"`
}
