package repositories

import (
	"context"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
)

// HistoryArchiver mirrors committed ledger entries into durable storage for audit.
// Archived entries are never read back into a session.
type HistoryArchiver interface {
	SaveEntry(ctx context.Context, sessionID string, entry domain.HistoryEntry) error
}
