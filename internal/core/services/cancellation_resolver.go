package services

import (
	"fmt"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
)

const (
	msgItemsCancelled    = "Items cancelled successfully"
	msgAllCancelled      = "All orders cancelled successfully"
	msgNoActiveOrders    = "No active orders to cancel"
	msgNoItemsSpecified  = "No items specified for cancellation"
	fmtOrderNotFound     = "Order #%d not found or already cancelled"
	fmtOrderNotFoundDisp = "Error: Order #%d does not exist"
)

// Resolution describes what a cancellation request will do to the ledger.
// A rejected resolution must leave the ledger and totals untouched.
type Resolution struct {
	Rejected       bool
	Message        string
	DisplayMessage string
	// Lines to subtract. Empty for cancel-all, which resets instead.
	Lines []domain.OrderLine
	// CancelledOrders are whole orders voided by this cancellation.
	CancelledOrders []int
	CancelAll       bool
}

// CancellationResolver decides which prior orders a cancellation affects.
type CancellationResolver struct {
	ledger portsrepo.LedgerReader
}

// NewCancellationResolver creates a resolver reading from ledger.
func NewCancellationResolver(ledger portsrepo.LedgerReader) *CancellationResolver {
	return &CancellationResolver{ledger: ledger}
}

// Resolve maps req to a Resolution. It returns an error only for invalid
// explicit lines; lookup failures come back as a rejected Resolution.
func (r *CancellationResolver) Resolve(req domain.CancelRequest) (Resolution, error) {
	switch {
	case req.CancelAll:
		return r.resolveAll(), nil
	case req.OrderNumber != nil:
		return r.resolveOrder(*req.OrderNumber), nil
	case len(req.Lines) > 0:
		return r.resolveLines(req.Lines)
	default:
		return Resolution{
			Rejected:       true,
			Message:        msgNoItemsSpecified,
			DisplayMessage: "Error: " + msgNoItemsSpecified,
		}, nil
	}
}

func (r *CancellationResolver) resolveLines(lines []domain.OrderLine) (Resolution, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Message:        msgItemsCancelled,
		DisplayMessage: "Cancelled: " + domain.FormatLines(lines),
		Lines:          append([]domain.OrderLine(nil), lines...),
	}, nil
}

func (r *CancellationResolver) resolveOrder(id int) Resolution {
	order, ok := r.ledger.FindOrder(id)
	if !ok {
		return Resolution{
			Rejected:       true,
			Message:        fmt.Sprintf(fmtOrderNotFound, id),
			DisplayMessage: fmt.Sprintf(fmtOrderNotFoundDisp, id),
		}
	}
	return Resolution{
		Message:         msgItemsCancelled,
		DisplayMessage:  fmt.Sprintf("Cancelled order #%d: %s", order.ID, domain.FormatLines(order.Items)),
		Lines:           order.Items,
		CancelledOrders: []int{order.ID},
	}
}

func (r *CancellationResolver) resolveAll() Resolution {
	active := r.ledger.ActiveOrders()
	if len(active) == 0 {
		return Resolution{
			Rejected:       true,
			Message:        msgNoActiveOrders,
			DisplayMessage: msgNoActiveOrders,
		}
	}

	ids := make([]int, len(active))
	for i, order := range active {
		ids[i] = order.ID
	}
	return Resolution{
		Message:         msgAllCancelled,
		DisplayMessage:  fmt.Sprintf("Cancelled all orders (%d %s)", len(active), pluralize(len(active), "order", "orders")),
		CancelledOrders: ids,
		CancelAll:       true,
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
