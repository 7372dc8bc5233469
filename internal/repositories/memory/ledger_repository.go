package memory

import (
	"sync"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
)

// LedgerRepository is the in-process, append-only store for one order session.
type LedgerRepository struct {
	mu        sync.RWMutex
	entries   []domain.HistoryEntry
	nextID    int
	cancelled map[int]struct{}
	now       func() time.Time
}

// Option configures a LedgerRepository.
type Option func(*LedgerRepository)

// WithClock overrides the clock used to timestamp entries.
func WithClock(now func() time.Time) Option {
	return func(r *LedgerRepository) {
		r.now = now
	}
}

// NewLedgerRepository creates an empty ledger whose first id is 1.
func NewLedgerRepository(options ...Option) *LedgerRepository {
	r := &LedgerRepository{
		nextID:    1,
		cancelled: make(map[int]struct{}),
		now:       time.Now,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Ensure LedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

// Append stores a new entry and marks any whole orders it voids as cancelled.
func (r *LedgerRepository) Append(action domain.ActionType, lines []domain.OrderLine, displayMessage *string, cancelledOrders []int) domain.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := domain.HistoryEntry{
		ID:              r.nextID,
		ActionType:      action,
		Items:           append([]domain.OrderLine{}, lines...),
		Timestamp:       r.now().UTC(),
		DisplayMessage:  displayMessage,
		CancelledOrders: cancelledOrders,
	}
	// detach from caller-owned slices and message before the entry becomes visible
	entry = entry.Clone()

	r.entries = append(r.entries, entry)
	r.nextID++
	for _, id := range cancelledOrders {
		r.cancelled[id] = struct{}{}
	}
	return entry.Clone()
}

// Snapshot returns a deep copy of the ledger.
func (r *LedgerRepository) Snapshot() []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HistoryEntry, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.Clone()
	}
	return out
}

// FindOrder looks up an order entry by id, skipping cancelled orders.
func (r *LedgerRepository) FindOrder(id int) (domain.HistoryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, gone := r.cancelled[id]; gone {
		return domain.HistoryEntry{}, false
	}
	// ids are dense and start at 1, so the entry sits at index id-1
	if id < 1 || id > len(r.entries) {
		return domain.HistoryEntry{}, false
	}
	entry := r.entries[id-1]
	if entry.ID != id || entry.ActionType != domain.ActionOrder {
		return domain.HistoryEntry{}, false
	}
	return entry.Clone(), true
}

// ActiveOrders returns order entries that no cancellation has voided.
func (r *LedgerRepository) ActiveOrders() []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []domain.HistoryEntry
	for _, entry := range r.entries {
		if entry.ActionType != domain.ActionOrder {
			continue
		}
		if _, gone := r.cancelled[entry.ID]; gone {
			continue
		}
		active = append(active, entry.Clone())
	}
	return active
}
