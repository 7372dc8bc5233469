package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/SscSPs/drive_thru_order_app/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelHistoryEntry(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	archived := created.Add(time.Second)
	msg := "Cancelled order #2: 1 fries, 2 drink"

	row, err := mapping.ToModelHistoryEntry("sess-1", domain.HistoryEntry{
		ID:              3,
		ActionType:      domain.ActionCancel,
		Items:           []domain.OrderLine{{ItemType: domain.Fries, Quantity: 1}, {ItemType: domain.Drink, Quantity: 2}},
		Timestamp:       created,
		DisplayMessage:  &msg,
		CancelledOrders: []int{2},
	}, archived)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", row.SessionID)
	assert.Equal(t, 3, row.EntryID)
	assert.Equal(t, "cancel", row.ActionType)
	assert.JSONEq(t, `[{"item_type":"fries","quantity":1},{"item_type":"drink","quantity":2}]`, string(row.Items))
	assert.Equal(t, &msg, row.DisplayMessage)
	assert.Equal(t, []int32{2}, row.CancelledOrders)
	assert.Equal(t, created, row.CreatedAt)
	assert.Equal(t, archived, row.ArchivedAt)
}

func TestToModelHistoryEntry_CancelAllEncodesEmptyArray(t *testing.T) {
	row, err := mapping.ToModelHistoryEntry("sess-1", domain.HistoryEntry{ID: 4, ActionType: domain.ActionCancel}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(row.Items))
	assert.Empty(t, row.CancelledOrders)
}
