package services

import (
	"context"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
)

// OrderReaderSvc defines read operations over the current session.
type OrderReaderSvc interface {
	// GetHistory returns the committed ledger in append order.
	GetHistory(ctx context.Context) []domain.HistoryEntry

	// GetTotals returns the committed per-item totals.
	GetTotals(ctx context.Context) domain.Totals
}

// OrderWriterSvc defines the mutating operations of the order engine.
type OrderWriterSvc interface {
	// PlaceOrder validates lines and appends an order entry.
	PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.ActionResult, error)

	// CancelItems resolves a cancellation request. Resolution failures are
	// reported as an error-status result, not as an error.
	CancelItems(ctx context.Context, req domain.CancelRequest) (*domain.ActionResult, error)

	// ProcessAction dispatches a structured action to PlaceOrder or CancelItems.
	ProcessAction(ctx context.Context, action domain.Action) (*domain.ActionResult, error)
}

// UtteranceSvc turns free-form customer text into a processed action.
type UtteranceSvc interface {
	ProcessUtterance(ctx context.Context, utterance string) (*domain.ActionResult, error)
}

// OrderSvcFacade combines all order-related service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	UtteranceSvc
}

// ActionTranslator is the boundary to the external language-understanding service.
type ActionTranslator interface {
	// Translate must return exactly one place or cancel action, or an error
	// wrapping apperrors.ErrUnintelligible / apperrors.ErrUpstream.
	Translate(ctx context.Context, utterance string) (domain.Action, error)
}
