package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/SscSPs/drive_thru_order_app/internal/models"
)

// ToModelHistoryEntry converts a domain HistoryEntry to its archive row.
func ToModelHistoryEntry(sessionID string, d domain.HistoryEntry, archivedAt time.Time) (models.HistoryEntry, error) {
	items := d.Items
	if items == nil {
		items = []domain.OrderLine{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to encode items of entry %d: %w", d.ID, err)
	}

	cancelled := make([]int32, len(d.CancelledOrders))
	for i, id := range d.CancelledOrders {
		cancelled[i] = int32(id)
	}

	return models.HistoryEntry{
		SessionID:       sessionID,
		EntryID:         d.ID,
		ActionType:      string(d.ActionType),
		Items:           encoded,
		DisplayMessage:  d.DisplayMessage,
		CancelledOrders: cancelled,
		CreatedAt:       d.Timestamp,
		ArchivedAt:      archivedAt,
	}, nil
}
