package dto

import (
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
)

// ProcessOrderRequest carries a free-form customer utterance.
type ProcessOrderRequest struct {
	Message string `json:"message" binding:"required" example:"I want a burger and two cokes"`
}

// OrderLineRequest is one item line of a structured action.
type OrderLineRequest struct {
	ItemType string `json:"item_type" binding:"required" example:"burger"`
	Quantity int    `json:"quantity" example:"1"`
}

// ActionType values accepted by ActionRequest.
const (
	ActionPlaceOrder  = "place_order"
	ActionCancelItems = "cancel_items"
)

// ActionRequest is a structured place or cancel action.
// For cancel_items, cancel_all wins over order_number, which wins over items.
type ActionRequest struct {
	Type        string             `json:"type" binding:"required,oneof=place_order cancel_items" example:"place_order"`
	Items       []OrderLineRequest `json:"items" binding:"omitempty,dive"`
	OrderNumber *int               `json:"order_number,omitempty" example:"2"`
	CancelAll   bool               `json:"cancel_all,omitempty"`
}

// ResultEnvelope is returned for every processed action.
type ResultEnvelope struct {
	Status         string                  `json:"status" example:"success"`
	Message        string                  `json:"message" example:"Order placed successfully"`
	DisplayMessage string                  `json:"display_message,omitempty" example:"Cancelled order #2: 1 fries, 2 drink"`
	History        []domain.HistoryEntry   `json:"history"`
	Totals         map[domain.ItemKind]int `json:"totals"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToDomainAction converts a structured request to a domain action.
func (r ActionRequest) ToDomainAction() domain.Action {
	lines := make([]domain.OrderLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = domain.OrderLine{ItemType: domain.ItemKind(item.ItemType), Quantity: item.Quantity}
	}

	if r.Type == ActionPlaceOrder {
		return domain.Action{Place: &domain.PlaceOrderRequest{Lines: lines}}
	}
	return domain.Action{Cancel: &domain.CancelRequest{
		Lines:       lines,
		OrderNumber: r.OrderNumber,
		CancelAll:   r.CancelAll,
	}}
}

// ToResultEnvelope converts a domain result to its wire form.
func ToResultEnvelope(result *domain.ActionResult) ResultEnvelope {
	return ResultEnvelope{
		Status:         string(result.Status),
		Message:        result.Message,
		DisplayMessage: result.DisplayMessage,
		History:        ToHistoryResponse(result.History),
		Totals:         result.Totals,
	}
}

// ToHistoryResponse guarantees an empty JSON array rather than null.
func ToHistoryResponse(history []domain.HistoryEntry) []domain.HistoryEntry {
	if history == nil {
		return []domain.HistoryEntry{}
	}
	return history
}
