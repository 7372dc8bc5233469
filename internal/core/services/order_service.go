package services

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drive_thru_order_app/internal/core/ports/services"
)

const msgOrderPlaced = "Order placed successfully"

// EntryPublisher receives every committed ledger entry. Publish must not block.
type EntryPublisher interface {
	Publish(entry domain.HistoryEntry)
}

// orderService is the order engine for a single session. It owns the
// incrementally maintained totals and serialises every mutation so that
// resolve, append and projection commit as one unit.
type orderService struct {
	BaseService
	mu                sync.RWMutex
	ledger            portsrepo.LedgerRepositoryFacade
	resolver          *CancellationResolver
	totals            domain.Totals
	translator        portssvc.ActionTranslator
	translatorTimeout time.Duration
	publisher         EntryPublisher
	verifyProjection  bool
}

// OrderServiceOption is a functional option for configuring the order service
type OrderServiceOption func(*orderService)

// WithTranslator adds the utterance translator dependency
func WithTranslator(t portssvc.ActionTranslator, timeout time.Duration) OrderServiceOption {
	return func(s *orderService) {
		s.translator = t
		s.translatorTimeout = timeout
	}
}

// WithEntryPublisher forwards committed entries to p
func WithEntryPublisher(p EntryPublisher) OrderServiceOption {
	return func(s *orderService) {
		s.publisher = p
	}
}

// WithProjectionCheck replays the full ledger after every mutation and fails
// if the incremental totals drift from the replayed ones.
func WithProjectionCheck(enabled bool) OrderServiceOption {
	return func(s *orderService) {
		s.verifyProjection = enabled
	}
}

// NewOrderService creates the order engine over ledger. Totals are seeded by
// replaying whatever the ledger already holds.
func NewOrderService(ledger portsrepo.LedgerRepositoryFacade, options ...OrderServiceOption) portssvc.OrderSvcFacade {
	svc := &orderService{
		ledger:   ledger,
		resolver: NewCancellationResolver(ledger),
		totals:   domain.Recompute(ledger.Snapshot()),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure orderService implements the OrderSvcFacade interface
var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.ActionResult, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no items specified in the order", apperrors.ErrValidation)
	}
	if err := domain.ValidateLines(lines); err != nil {
		s.LogWarn(ctx, "Rejected order with invalid items", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.commit(ctx, domain.ActionOrder, lines, nil, nil)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Order placed",
		slog.Int("entry_id", entry.ID),
		slog.String("items", domain.FormatLines(entry.Items)))
	return s.resultLocked(domain.StatusSuccess, msgOrderPlaced, ""), nil
}

func (s *orderService) CancelItems(ctx context.Context, req domain.CancelRequest) (*domain.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolution, err := s.resolver.Resolve(req)
	if err != nil {
		s.LogWarn(ctx, "Rejected cancellation with invalid items", slog.String("error", err.Error()))
		return nil, err
	}
	if resolution.Rejected {
		s.LogInfo(ctx, "Cancellation could not be resolved", slog.String("reason", resolution.Message))
		return s.resultLocked(domain.StatusError, resolution.Message, resolution.DisplayMessage), nil
	}

	display := resolution.DisplayMessage
	entry, err := s.commit(ctx, domain.ActionCancel, resolution.Lines, &display, resolution.CancelledOrders)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cancellation recorded",
		slog.Int("entry_id", entry.ID),
		slog.Bool("cancel_all", resolution.CancelAll),
		slog.String("display_message", display))
	return s.resultLocked(domain.StatusSuccess, resolution.Message, display), nil
}

func (s *orderService) ProcessAction(ctx context.Context, action domain.Action) (*domain.ActionResult, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	if action.Place != nil {
		return s.PlaceOrder(ctx, action.Place.Lines)
	}
	return s.CancelItems(ctx, *action.Cancel)
}

func (s *orderService) ProcessUtterance(ctx context.Context, utterance string) (*domain.ActionResult, error) {
	if s.translator == nil {
		return nil, fmt.Errorf("%w: language model API key not configured", apperrors.ErrNotConfigured)
	}
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}

	// the translator call happens outside the ledger lock
	tctx := ctx
	if s.translatorTimeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, s.translatorTimeout)
		defer cancel()
	}

	s.LogInfo(ctx, "Translating utterance", slog.String("utterance", utterance))
	action, err := s.translator.Translate(tctx, utterance)
	if err != nil {
		s.LogError(ctx, err, "Failed to translate utterance")
		return nil, err
	}
	return s.ProcessAction(ctx, action)
}

func (s *orderService) GetHistory(ctx context.Context) []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Snapshot()
}

func (s *orderService) GetTotals(ctx context.Context) domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals.Clone()
}

// commit checks the entry against a copy of the totals and only then appends
// it, so a failed check leaves ledger and totals untouched. Callers hold s.mu.
func (s *orderService) commit(ctx context.Context, action domain.ActionType, lines []domain.OrderLine, display *string, cancelledOrders []int) (domain.HistoryEntry, error) {
	pending := domain.HistoryEntry{ActionType: action, Items: lines}

	next := s.totals.Clone()
	next.Apply(pending)
	if err := next.Check(); err != nil {
		err = fmt.Errorf("%w: %v", apperrors.ErrInvariantViolation, err)
		s.LogError(ctx, err, "Totals invariant violated", slog.String("action", string(action)))
		return domain.HistoryEntry{}, err
	}
	if s.verifyProjection {
		replayed := domain.Recompute(append(s.ledger.Snapshot(), pending))
		if !maps.Equal(replayed, next) {
			err := fmt.Errorf("%w: incremental totals %v differ from replayed %v", apperrors.ErrInvariantViolation, next, replayed)
			s.LogError(ctx, err, "Totals projection drifted", slog.String("action", string(action)))
			return domain.HistoryEntry{}, err
		}
	}

	entry := s.ledger.Append(action, lines, display, cancelledOrders)
	s.totals = next

	if s.publisher != nil {
		s.publisher.Publish(entry)
	}
	return entry, nil
}

// resultLocked builds the envelope from committed state. Callers hold s.mu.
func (s *orderService) resultLocked(status domain.ResultStatus, message, display string) *domain.ActionResult {
	return &domain.ActionResult{
		Status:         status,
		Message:        message,
		DisplayMessage: display,
		History:        s.ledger.Snapshot(),
		Totals:         s.totals.Clone(),
	}
}
