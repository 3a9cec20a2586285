package service

import (
	"context"
	"log/slog"
	"sync"

	"taker_go/internal/domain"

	"github.com/google/uuid"
)

// FormView is a point-in-time copy of everything the rendering layer needs
// to draw the trade form.
type FormView struct {
	Quote      *domain.MarketQuote  `json:"quote,omitempty"`
	Account    *domain.AccountState `json:"account,omitempty"`
	Quantity   int64                `json:"quantity"`
	UserEdited bool                 `json:"user_edited"`
	Terms      domain.DerivedTerms  `json:"terms"`
	Evaluation domain.Evaluation    `json:"evaluation"`
	Flow       domain.FlowState     `json:"flow"`
	Direction  domain.Direction     `json:"direction,omitempty"`
	LastError  string               `json:"last_error,omitempty"`
}

// FormService owns the state of a single order-entry form: the latest
// quote/account snapshots, the user's draft and the confirmation flow.
// Feed events and gateway requests arrive on different goroutines, so all
// state lives behind one mutex; within it, transitions are strictly
// sequential, matching a single-threaded event dispatch.
type FormService struct {
	mu        sync.RWMutex
	quote     *domain.MarketQuote
	account   *domain.AccountState
	draft     *domain.OrderDraft
	flow      domain.FlowState
	direction domain.Direction
	lastError string

	// One in-flight submission per form instance. The latch disables the
	// submit affordance; it never queues or cancels.
	submitting bool

	submitter domain.OrderSubmitter
	updates   chan domain.FeedUpdate
	logger    *slog.Logger
}

// NewFormService creates a form with an empty draft and an idle flow.
func NewFormService(submitter domain.OrderSubmitter) *FormService {
	return &FormService{
		draft:     domain.NewOrderDraft(),
		flow:      domain.FlowIdle,
		submitter: submitter,
		updates:   make(chan domain.FeedUpdate, 256),
		logger:    slog.Default().With("module", "form_service"),
	}
}

// Inbox returns the channel the feed worker pushes snapshots into.
func (s *FormService) Inbox() chan<- domain.FeedUpdate {
	return s.updates
}

// StartUpdateProcessor consumes feed updates until the context is cancelled.
func (s *FormService) StartUpdateProcessor(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update := <-s.updates:
				s.Apply(update)
			}
		}
	}()
}

// Apply installs a feed snapshot. A refreshed quote re-syncs the draft to the
// new minimum unless the user has taken over the field.
func (s *FormService) Apply(update domain.FeedUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Quote != nil {
		s.quote = update.Quote
		s.draft.ApplyQuoteRefresh(update.Quote.MinQuantity)
	}
	if update.Account != nil {
		s.account = update.Account
	}
}

// SetQuantityInput applies raw quantity input from the form field.
func (s *FormService) SetQuantityInput(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetQuantityInput(raw)
}

// BeginConfirmation opens the confirmation dialog for the chosen direction.
func (s *FormService) BeginConfirmation(direction domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow != domain.FlowIdle {
		return domain.ErrSubmissionInFlight
	}
	s.flow = domain.FlowAwaitingConfirmation
	s.direction = direction
	s.lastError = ""
	return nil
}

// CancelConfirmation dismisses the dialog from any state and resets the draft
// to the offer minimum with the edited latch cleared, so the next entry into
// the flow starts from a safe default.
func (s *FormService) CancelConfirmation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *FormService) resetLocked() {
	s.flow = domain.FlowIdle
	s.direction = ""
	var min int64
	if s.quote != nil {
		min = s.quote.MinQuantity
	}
	s.draft.Reset(min)
}

// ConfirmSubmit sends the drafted order to the daemon. The submitting latch
// holds from confirm until the response lands; a second confirm in that
// window fails fast instead of queueing.
func (s *FormService) ConfirmSubmit(ctx context.Context) error {
	s.mu.Lock()
	if s.flow != domain.FlowAwaitingConfirmation {
		s.mu.Unlock()
		return domain.ErrNoConfirmation
	}
	if s.submitting {
		s.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}

	eval := s.evaluateLocked()
	if !eval.Eligible {
		s.mu.Unlock()
		return domain.ErrNotEligible
	}

	req := &domain.OrderRequest{
		ClientOrderID: uuid.NewString(),
		OrderID:       s.account.OrderID,
		Symbol:        s.quote.Symbol,
		Quantity:      s.draft.Quantity,
		Direction:     s.direction,
		Price:         s.quote.AskPrice,
		Leverage:      s.account.Leverage,
	}
	s.submitting = true
	s.flow = domain.FlowSubmitting
	s.mu.Unlock()

	// The request runs outside the lock so feed updates keep flowing while
	// the daemon works.
	err := s.submitter.Submit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		// The form stays editable and the dialog stays open for a retry.
		s.flow = domain.FlowAwaitingConfirmation
		s.lastError = err.Error()
		s.logger.Warn("Order submission failed",
			slog.String("client_order_id", req.ClientOrderID),
			slog.Any("error", err))
		return err
	}

	s.logger.Info("Order submitted",
		slog.String("client_order_id", req.ClientOrderID),
		slog.String("direction", string(req.Direction)),
		slog.Int64("quantity", req.Quantity))
	s.resetLocked()
	return nil
}

func (s *FormService) evaluateLocked() domain.Evaluation {
	if s.quote == nil || s.account == nil {
		// Before the first snapshots land the maker is, as far as the form
		// knows, not there yet.
		return domain.Evaluation{Eligible: false, Diagnostic: domain.DiagnosticNoMaker}
	}
	return domain.EvaluateSubmitEligibility(s.quote, s.account, s.draft, s.submitting)
}

// Snapshot returns a consistent copy of the form state for rendering.
func (s *FormService) Snapshot() FormView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := FormView{
		Quantity:   s.draft.Quantity,
		UserEdited: s.draft.UserEdited(),
		Evaluation: s.evaluateLocked(),
		Flow:       s.flow,
		Direction:  s.direction,
		LastError:  s.lastError,
	}
	if s.quote != nil {
		q := *s.quote
		view.Quote = &q
	}
	if s.account != nil {
		a := *s.account
		view.Account = &a
	}
	if s.quote != nil && s.account != nil {
		view.Terms = domain.ComputeTerms(s.quote, s.account, s.draft.Quantity)
	}
	return view
}
