package checkout

import (
	"context"
	"strings"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/shopspring/decimal"
)

// PaymentResolver produces the payment records a generation displays.
//
// Bank transfer always creates fresh records: every visit to the transfer
// screen is a new checkout attempt and must get its own reference, so records
// left by earlier visits are never reused. Other methods show the newest
// existing records.
type PaymentResolver struct {
	payments  PaymentFetcher
	creator   PaymentCreator
	guard     *Guard
	journal   Journal
	sessionID string
}

func NewPaymentResolver(payments PaymentFetcher, creator PaymentCreator, guard *Guard, journal Journal, sessionID string) *PaymentResolver {
	if journal == nil {
		journal = nopJournal{}
	}
	return &PaymentResolver{
		payments:  payments,
		creator:   creator,
		guard:     guard,
		journal:   journal,
		sessionID: sessionID,
	}
}

// Resolve returns the payments of order for method under gen, or ErrSuperseded
// when gen was replaced while the backend call was in flight. A superseded
// creation is not undone on the backend.
func (r *PaymentResolver) Resolve(ctx context.Context, order models.Order, method models.PaymentMethod, gen Generation) ([]models.Payment, error) {
	if method == models.PaymentMethodBankTransfer {
		return r.create(ctx, order, method, gen)
	}
	return r.existing(ctx, order, gen)
}

func (r *PaymentResolver) existing(ctx context.Context, order models.Order, gen Generation) ([]models.Payment, error) {
	payments, err := r.payments.FetchPaymentsForOrder(ctx, order.ID)
	if err != nil {
		utils.LogError("Failed to fetch payments for order %s: %v", order.ID, err)
		return nil, newError(KindPaymentFetch, order.ID, "failed to load payments", err)
	}

	payments = latestOnly(filterOrder(order.ID, payments))
	if !r.guard.IsCurrent(gen) {
		return nil, ErrSuperseded
	}
	utils.LogDebug("Resolved %d existing payments for order %s", len(payments), order.ID)
	return payments, nil
}

func (r *PaymentResolver) create(ctx context.Context, order models.Order, method models.PaymentMethod, gen Generation) ([]models.Payment, error) {
	utils.LogInfo("Creating %s payment for order %s (generation %d)", method, order.ID, gen.Seq())
	created, err := r.creator.CreatePayment(ctx, order.ID, method)
	if err != nil {
		utils.LogError("Failed to create payment for order %s: %v", order.ID, err)
		r.RecordOutcome(ctx, gen, nil, models.AttemptOutcomeFailed, err)
		return nil, newError(KindPaymentCreation, order.ID, "failed to create payment", err)
	}

	payments := filterOrder(order.ID, created)
	if dropped := len(created) - len(payments); dropped > 0 {
		utils.LogError("Dropped %d created payments not belonging to order %s", dropped, order.ID)
	}

	if !r.guard.IsCurrent(gen) {
		utils.LogInfo("Discarding payments created for superseded generation %d of order %s", gen.Seq(), order.ID)
		r.RecordOutcome(ctx, gen, payments, models.AttemptOutcomeAbandoned, nil)
		return nil, ErrSuperseded
	}
	if len(payments) == 0 {
		err := newError(KindPaymentCreation, order.ID, "payment service returned no payment for the order", nil)
		r.RecordOutcome(ctx, gen, nil, models.AttemptOutcomeFailed, err)
		return nil, err
	}
	return payments, nil
}

// RecordOutcome journals one creation attempt. Journal failures are logged and
// never affect the checkout.
func (r *PaymentResolver) RecordOutcome(ctx context.Context, gen Generation, payments []models.Payment, outcome string, cause error) {
	ids := make([]string, 0, len(payments))
	refs := make([]string, 0, len(payments))
	amount := decimal.Zero
	for _, p := range payments {
		ids = append(ids, p.ID)
		if p.Reference != "" {
			refs = append(refs, p.Reference)
		}
		amount = amount.Add(p.Amount)
	}

	attempt := models.PaymentAttempt{
		SessionID:  r.sessionID,
		Generation: gen.Seq(),
		OrderID:    gen.OrderID,
		Method:     string(gen.Method),
		PaymentIDs: strings.Join(ids, ","),
		References: strings.Join(refs, ","),
		Amount:     amount,
		Outcome:    outcome,
	}
	if cause != nil {
		attempt.ErrorMessage = cause.Error()
	}
	if err := r.journal.Record(context.WithoutCancel(ctx), attempt); err != nil {
		utils.LogError("Failed to journal payment attempt for order %s: %v", gen.OrderID, err)
	}
}
