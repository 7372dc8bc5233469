package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.OrderLine
		wantErr string
	}{
		{name: "valid burger", line: domain.OrderLine{ItemType: domain.Burger, Quantity: 1}},
		{name: "valid drinks", line: domain.OrderLine{ItemType: domain.Drink, Quantity: 12}},
		{name: "unknown kind", line: domain.OrderLine{ItemType: "pizza", Quantity: 1}, wantErr: "invalid item type: pizza"},
		{name: "empty kind", line: domain.OrderLine{Quantity: 1}, wantErr: "invalid item type: "},
		{name: "zero quantity", line: domain.OrderLine{ItemType: domain.Fries, Quantity: 0}, wantErr: "invalid quantity: 0"},
		{name: "quantity at cap", line: domain.OrderLine{ItemType: domain.Burger, Quantity: domain.MaxQuantity}},
		{name: "quantity above cap", line: domain.OrderLine{ItemType: domain.Burger, Quantity: domain.MaxQuantity + 1}, wantErr: "invalid quantity: 1001"},
		{name: "max int quantity", line: domain.OrderLine{ItemType: domain.Burger, Quantity: math.MaxInt}, wantErr: "invalid quantity"},
		{name: "negative quantity", line: domain.OrderLine{ItemType: domain.Fries, Quantity: -2}, wantErr: "invalid quantity: -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateLines_ReturnsFirstFailure(t *testing.T) {
	err := domain.ValidateLines([]domain.OrderLine{
		{ItemType: domain.Burger, Quantity: 1},
		{ItemType: "salad", Quantity: 1},
		{ItemType: domain.Drink, Quantity: 0},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "salad")
}

func TestFormatLines(t *testing.T) {
	assert.Equal(t, "1 fries, 2 drink", domain.FormatLines([]domain.OrderLine{
		{ItemType: domain.Fries, Quantity: 1},
		{ItemType: domain.Drink, Quantity: 2},
	}))
	assert.Equal(t, "", domain.FormatLines(nil))
}

func TestAction_Validate(t *testing.T) {
	assert.ErrorIs(t, domain.Action{}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.Action{Place: &domain.PlaceOrderRequest{}, Cancel: &domain.CancelRequest{}}.Validate(), apperrors.ErrValidation)
	assert.NoError(t, domain.Action{Place: &domain.PlaceOrderRequest{}}.Validate())
	assert.NoError(t, domain.Action{Cancel: &domain.CancelRequest{CancelAll: true}}.Validate())
}

func TestHistoryEntry_CloneDetaches(t *testing.T) {
	msg := "Cancelled order #1: 1 burger"
	entry := domain.HistoryEntry{
		ID:              2,
		ActionType:      domain.ActionCancel,
		Items:           []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}},
		DisplayMessage:  &msg,
		CancelledOrders: []int{1},
	}

	clone := entry.Clone()
	clone.Items[0].Quantity = 9
	clone.CancelledOrders[0] = 9
	*clone.DisplayMessage = "changed"

	assert.Equal(t, 1, entry.Items[0].Quantity)
	assert.Equal(t, []int{1}, entry.CancelledOrders)
	assert.Equal(t, "Cancelled order #1: 1 burger", *entry.DisplayMessage)

	empty := domain.HistoryEntry{ActionType: domain.ActionCancel, Items: []domain.OrderLine{}}
	assert.NotNil(t, empty.Clone().Items)
	assert.True(t, empty.IsCancelAll())
}
