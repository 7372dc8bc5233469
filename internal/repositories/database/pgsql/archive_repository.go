package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
	"github.com/SscSPs/drive_thru_order_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxArchiveRepository writes committed ledger entries to order_history_entries.
type PgxArchiveRepository struct {
	BaseRepository
}

// NewArchiveRepository creates a new repository for archived history entries.
func NewArchiveRepository(pool *pgxpool.Pool) *PgxArchiveRepository {
	return &PgxArchiveRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HistoryArchiver = (*PgxArchiveRepository)(nil)

// SaveEntry inserts one entry. Re-archiving the same (session, entry) is a no-op
// because ledger entries never change after they are appended.
func (r *PgxArchiveRepository) SaveEntry(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	row, err := mapping.ToModelHistoryEntry(sessionID, entry, time.Now().UTC())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO order_history_entries (
			session_id, entry_id, action_type, items, display_message, cancelled_orders, created_at, archived_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id, entry_id) DO NOTHING;
	`

	_, err = r.Pool.Exec(ctx, query,
		row.SessionID,
		row.EntryID,
		row.ActionType,
		row.Items,
		row.DisplayMessage,
		row.CancelledOrders,
		row.CreatedAt,
		row.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive history entry %d: %w", row.EntryID, err)
	}
	return nil
}
