package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
)

// Status is the coarse state exposed to presentation code.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Phase is the pipeline step of the active generation.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseLoadingOrder      Phase = "loading_order"
	PhaseResolvingPayments Phase = "resolving_payments"
	PhaseReconciling       Phase = "reconciling"
	PhaseReady             Phase = "ready"
	PhaseError             Phase = "error"
)

func (p Phase) Status() Status {
	switch p {
	case PhaseLoadingOrder, PhaseResolvingPayments, PhaseReconciling:
		return StatusLoading
	case PhaseReady:
		return StatusReady
	case PhaseError:
		return StatusError
	default:
		return StatusIdle
	}
}

func (p Phase) terminal() bool {
	return p == PhaseReady || p == PhaseError
}

// ErrorInfo is the user-facing form of a fatal checkout error.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Snapshot is a copy of the session state. It is safe to keep and share.
type Snapshot struct {
	Generation uint64                       `json:"generation"`
	OrderID    string                       `json:"order_id,omitempty"`
	Method     models.PaymentMethod         `json:"method,omitempty"`
	Status     Status                       `json:"status"`
	Phase      Phase                        `json:"phase"`
	Error      *ErrorInfo                   `json:"error,omitempty"`
	Order      *models.Order                `json:"order,omitempty"`
	Payments   []models.Payment             `json:"payments,omitempty"`
	Batch      *models.PaymentBatch         `json:"batch,omitempty"`
	View       *models.CanonicalPaymentView `json:"view,omitempty"`
}

// Options configure a Session.
type Options struct {
	ID                string
	Backend           Backend
	Journal           Journal
	BatchWindow       time.Duration // zero means DefaultBatchWindow
	LookupConcurrency int
	Projector         Projector
}

// sessionState is everything a generation may write. Its zero value is the
// state of a fresh session.
type sessionState struct {
	gen      Generation
	phase    Phase
	order    *models.Order
	payments []models.Payment
	batch    *models.PaymentBatch
	view     *models.CanonicalPaymentView
	err      *Error
}

// Session reconciles the payment page of one viewer. Select switches the
// target order or method; results of earlier selections that complete later
// are discarded.
type Session struct {
	id         string
	guard      *Guard
	loader     *OrderLoader
	resolver   *PaymentResolver
	reconciler Reconciler
	projector  Projector

	wg sync.WaitGroup

	mu     sync.Mutex
	state  sessionState
	done   map[uint64]chan struct{}
	closed bool
}

func NewSession(opts Options) *Session {
	if opts.BatchWindow == 0 {
		opts.BatchWindow = DefaultBatchWindow
	}
	guard := NewGuard()
	return &Session{
		id:         opts.ID,
		guard:      guard,
		loader:     NewOrderLoader(opts.Backend, opts.Backend, guard, opts.LookupConcurrency),
		resolver:   NewPaymentResolver(opts.Backend, opts.Backend, guard, opts.Journal, opts.ID),
		reconciler: NewReconciler(opts.BatchWindow),
		projector:  opts.Projector,
		done:       make(map[uint64]chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

// Select opens a new generation for orderID/method and starts its pipeline.
// The previous generation is torn down first, so no state of it remains
// visible. Selecting the same order and method again starts a fresh attempt.
func (s *Session) Select(orderID string, method models.PaymentMethod) (Generation, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Generation{}, errors.New("checkout: order id is required")
	}
	if _, err := models.ParsePaymentMethod(string(method)); err != nil {
		return Generation{}, fmt.Errorf("checkout: %v", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Generation{}, ErrSessionClosed
	}
	s.teardownLocked()
	gen := s.guard.Open(orderID, method)
	s.state = sessionState{gen: gen, phase: PhaseLoadingOrder}
	s.done[gen.Seq()] = make(chan struct{})
	s.mu.Unlock()

	utils.LogInfo("Checkout session %s opened generation %d for order %s (%s)", s.id, gen.Seq(), orderID, method)

	s.wg.Add(1)
	go s.run(gen)
	return gen, nil
}

// Reset tears down the active generation, as when the payment view is
// discarded. The session stays usable.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

// Close tears the session down for good. Calls already in flight run to
// completion and their results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.teardownLocked()
	s.mu.Unlock()

	utils.LogDebug("Checkout session %s closed", s.id)
}

// Drain waits for pipelines that are still running, including superseded ones.
func (s *Session) Drain(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the active generation, if any.
func (s *Session) Current() (Generation, bool) {
	return s.guard.Current()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Wait blocks until gen is ready or failed. It returns ErrSuperseded when gen
// is replaced or torn down first.
func (s *Session) Wait(ctx context.Context, gen Generation) (Snapshot, error) {
	s.mu.Lock()
	ch, pending := s.done[gen.Seq()]
	s.mu.Unlock()

	if pending {
		select {
		case <-ch:
		case <-ctx.Done():
			return s.Snapshot(), ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.IsCurrent(gen) {
		return s.snapshotLocked(), ErrSuperseded
	}
	return s.snapshotLocked(), nil
}

// run drives one generation. Backend calls are never cancelled, neither on
// supersede nor on Close.
func (s *Session) run(gen Generation) {
	defer s.wg.Done()
	ctx := context.Background()

	order, err := s.loader.Load(ctx, gen.OrderID, gen)
	if err != nil {
		s.fail(gen, err)
		return
	}
	if !s.commit(gen, func(st *sessionState) {
		st.order = &order
		st.phase = PhaseResolvingPayments
	}) {
		return
	}

	payments, err := s.resolver.Resolve(ctx, order, gen.Method, gen)
	if err != nil {
		s.fail(gen, err)
		return
	}
	committed := s.commit(gen, func(st *sessionState) {
		st.payments = payments
		st.phase = PhaseReconciling
	})
	if gen.Method == models.PaymentMethodBankTransfer {
		outcome := models.AttemptOutcomeCommitted
		if !committed {
			outcome = models.AttemptOutcomeAbandoned
		}
		s.resolver.RecordOutcome(ctx, gen, payments, outcome, nil)
	}
	if !committed {
		return
	}

	batch := s.reconciler.Reconcile(order.ID, payments)
	view := s.projector.Project(order, batch)
	if view.Method == "" {
		view.Method = gen.Method
	}
	if s.commit(gen, func(st *sessionState) {
		st.batch = &batch
		st.view = &view
		st.phase = PhaseReady
	}) {
		utils.LogInfo("Checkout session %s ready for order %s: %d payments in batch, reference %s",
			s.id, order.ID, len(batch.Payments), view.Reference)
	}
}

// fail commits a fatal error for gen. Superseded results are dropped silently.
func (s *Session) fail(gen Generation, err error) {
	if errors.Is(err, ErrSuperseded) {
		utils.LogDebug("Checkout session %s dropped superseded generation %d", s.id, gen.Seq())
		return
	}
	var ce *Error
	if !errors.As(err, &ce) {
		ce = newError(KindOrderFetch, gen.OrderID, "unexpected checkout failure", err)
	}
	if !s.commit(gen, func(st *sessionState) {
		st.err = ce
		st.phase = PhaseError
	}) {
		utils.LogDebug("Checkout session %s discarded failure of superseded generation %d: %v", s.id, gen.Seq(), err)
	}
}

// commit applies fn to the shared state if gen is still current. The guard
// check and the write happen under one lock, so a generation opened
// concurrently either sees the write torn down or rejects it.
func (s *Session) commit(gen Generation, fn func(*sessionState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.IsCurrent(gen) {
		return false
	}
	fn(&s.state)
	if s.state.phase.terminal() {
		s.finishLocked(gen)
	}
	return true
}

// teardownLocked invalidates the active generation and resets the state to
// that of a fresh session.
func (s *Session) teardownLocked() {
	gen, ok := s.guard.Current()
	if !ok {
		s.state = sessionState{}
		return
	}
	s.guard.Teardown(gen)
	s.finishLocked(gen)
	s.state = sessionState{}
}

func (s *Session) finishLocked(gen Generation) {
	if ch, ok := s.done[gen.Seq()]; ok {
		close(ch)
		delete(s.done, gen.Seq())
	}
}

func (s *Session) snapshotLocked() Snapshot {
	st := s.state
	phase := st.phase
	if phase == "" {
		phase = PhaseIdle
	}
	snap := Snapshot{
		Generation: st.gen.Seq(),
		OrderID:    st.gen.OrderID,
		Method:     st.gen.Method,
		Status:     phase.Status(),
		Phase:      phase,
	}
	if st.err != nil {
		snap.Error = &ErrorInfo{Kind: st.err.Kind, Message: st.err.Message}
	}
	if st.order != nil {
		order := st.order.Clone()
		snap.Order = &order
	}
	if len(st.payments) > 0 {
		snap.Payments = append([]models.Payment(nil), st.payments...)
	}
	if st.batch != nil {
		batch := *st.batch
		batch.Payments = append([]models.Payment(nil), st.batch.Payments...)
		snap.Batch = &batch
	}
	if st.view != nil {
		view := *st.view
		view.PaymentIDs = append([]string(nil), st.view.PaymentIDs...)
		snap.View = &view
	}
	return snap
}
