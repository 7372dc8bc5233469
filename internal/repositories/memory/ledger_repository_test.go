package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/SscSPs/drive_thru_order_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestLedgerRepository_AppendAssignsSequentialIDs(t *testing.T) {
	repo := memory.NewLedgerRepository(memory.WithClock(fixedClock))

	first := repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, nil, nil)
	msg := "Cancelled: 1 burger"
	second := repo.Append(domain.ActionCancel, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, &msg, nil)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, fixedClock(), first.Timestamp)
	require.NotNil(t, second.DisplayMessage)
	assert.Equal(t, msg, *second.DisplayMessage)

	history := repo.Snapshot()
	require.Len(t, history, 2)
	assert.Equal(t, domain.ActionOrder, history[0].ActionType)
	assert.Equal(t, domain.ActionCancel, history[1].ActionType)
}

func TestLedgerRepository_AppendDetachesCallerSlices(t *testing.T) {
	repo := memory.NewLedgerRepository()
	lines := []domain.OrderLine{{ItemType: domain.Drink, Quantity: 2}}
	msg := "original"

	repo.Append(domain.ActionOrder, lines, &msg, nil)
	lines[0].Quantity = 99
	msg = "mutated"

	history := repo.Snapshot()
	assert.Equal(t, 2, history[0].Items[0].Quantity)
	assert.Equal(t, "original", *history[0].DisplayMessage)

	history[0].Items[0].Quantity = 42
	assert.Equal(t, 2, repo.Snapshot()[0].Items[0].Quantity)
}

func TestLedgerRepository_CancelAllEntryHasEmptyItems(t *testing.T) {
	repo := memory.NewLedgerRepository()
	entry := repo.Append(domain.ActionCancel, nil, nil, nil)

	assert.NotNil(t, entry.Items)
	assert.Empty(t, entry.Items)
	assert.True(t, entry.IsCancelAll())
}

func TestLedgerRepository_SnapshotOfEmptyLedgerIsNotNil(t *testing.T) {
	repo := memory.NewLedgerRepository()
	assert.NotNil(t, repo.Snapshot())
	assert.Empty(t, repo.Snapshot())
}

func TestLedgerRepository_FindOrder(t *testing.T) {
	repo := memory.NewLedgerRepository()
	repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, nil, nil)
	repo.Append(domain.ActionCancel, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, nil, nil)
	repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Fries, Quantity: 1}}, nil, nil)

	found, ok := repo.FindOrder(3)
	require.True(t, ok)
	assert.Equal(t, domain.Fries, found.Items[0].ItemType)

	_, ok = repo.FindOrder(2)
	assert.False(t, ok, "cancel entries are not orders")
	_, ok = repo.FindOrder(0)
	assert.False(t, ok)
	_, ok = repo.FindOrder(4)
	assert.False(t, ok)
}

func TestLedgerRepository_CancelledOrdersLeaveActiveSet(t *testing.T) {
	repo := memory.NewLedgerRepository()
	repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, nil, nil)
	repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Drink, Quantity: 2}}, nil, nil)
	repo.Append(domain.ActionCancel, []domain.OrderLine{{ItemType: domain.Drink, Quantity: 2}}, nil, []int{2})

	_, ok := repo.FindOrder(2)
	assert.False(t, ok)

	active := repo.ActiveOrders()
	require.Len(t, active, 1)
	assert.Equal(t, 1, active[0].ID)

	// the history itself is untouched
	assert.Len(t, repo.Snapshot(), 3)
}

func TestLedgerRepository_ConcurrentAppendsKeepIDsUnique(t *testing.T) {
	repo := memory.NewLedgerRepository()
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Append(domain.ActionOrder, []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}}, nil, nil)
		}()
	}
	wg.Wait()

	history := repo.Snapshot()
	require.Len(t, history, writers)
	for i, entry := range history {
		assert.Equal(t, i+1, entry.ID)
	}
}
