package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExistingPaymentsKeepNewestTimestamp(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 100, "ent-a")
	cod := func(id string, orderID string, ms int) models.Payment {
		p := bankPayment(id, orderID, 100, at(ms))
		p.Method = models.PaymentMethodCashOnDelivery
		return p
	}
	backend.Existing["o1"] = []models.Payment{
		cod("old", "o1", 0),
		cod("new-a", "o1", 9000),
		cod("new-b", "o1", 9000),
		cod("foreign", "o2", 12000),
	}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodCashOnDelivery)
	payments, err := NewPaymentResolver(backend, backend, guard, nil, "s1").
		Resolve(context.Background(), order, models.PaymentMethodCashOnDelivery, gen)

	require.NoError(t, err)
	assert.Equal(t, []string{"new-a", "new-b"}, ids(payments))
	assert.Equal(t, 0, backend.Creates())
}

func TestResolve_ExistingPaymentsFetchFailure(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 100, "ent-a")
	backend.PaymentsErr = ErrMockTransport

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodCashOnDelivery)
	_, err := NewPaymentResolver(backend, backend, guard, nil, "s1").
		Resolve(context.Background(), order, models.PaymentMethodCashOnDelivery, gen)

	kind, _ := KindOf(err)
	assert.Equal(t, KindPaymentFetch, kind)
}

func TestResolve_BankTransferAlwaysCreates(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 250000, "ent-a")
	existing := bankPayment("stale", "o1", 250000, at(0))
	existing.Reference = "STALE"
	backend.Existing["o1"] = []models.Payment{existing}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodBankTransfer)
	payments, err := NewPaymentResolver(backend, backend, guard, nil, "s1").
		Resolve(context.Background(), order, models.PaymentMethodBankTransfer, gen)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.Creates())
	assert.Equal(t, 0, backend.FetchCalls)
	require.Len(t, payments, 1)
	assert.NotEqual(t, "STALE", payments[0].Reference)
}

func TestResolve_BankTransferFiltersForeignRecords(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 200, "ent-a", "ent-b")
	backend.CreateFunc = func(orderID string, method models.PaymentMethod, call int) ([]models.Payment, error) {
		return []models.Payment{
			bankPayment("a", "o1", 100, at(0)),
			bankPayment("b", "o1", 100, at(10)),
			bankPayment("x", "o9", 100, at(10)),
		}, nil
	}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodBankTransfer)
	payments, err := NewPaymentResolver(backend, backend, guard, nil, "s1").
		Resolve(context.Background(), order, models.PaymentMethodBankTransfer, gen)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(payments))
}

func TestResolve_BankTransferCreationFailure(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 100, "ent-a")
	backend.Existing["o1"] = []models.Payment{bankPayment("cached", "o1", 100, at(0))}
	backend.CreateFunc = func(string, models.PaymentMethod, int) ([]models.Payment, error) {
		return nil, ErrMockTransport
	}
	journal := &MockJournal{}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodBankTransfer)
	payments, err := NewPaymentResolver(backend, backend, guard, journal, "s1").
		Resolve(context.Background(), order, models.PaymentMethodBankTransfer, gen)

	assert.Nil(t, payments, "no fallback to cached payments")
	kind, _ := KindOf(err)
	assert.Equal(t, KindPaymentCreation, kind)
	assert.Equal(t, []string{models.AttemptOutcomeFailed}, journal.Outcomes())
}

func TestResolve_BankTransferEmptyResultIsFailure(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 100, "ent-a")
	backend.CreateFunc = func(string, models.PaymentMethod, int) ([]models.Payment, error) {
		return []models.Payment{bankPayment("x", "o2", 100, at(0))}, nil
	}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodBankTransfer)
	_, err := NewPaymentResolver(backend, backend, guard, nil, "s1").
		Resolve(context.Background(), order, models.PaymentMethodBankTransfer, gen)

	kind, _ := KindOf(err)
	assert.Equal(t, KindPaymentCreation, kind)
}

func TestResolve_SupersededCreationIsJournalledAsAbandoned(t *testing.T) {
	backend := NewMockBackend()
	order := backend.AddOrder("o1", 100, "ent-a")
	backend.HoldCreate("o1")
	journal := &MockJournal{}

	guard := NewGuard()
	gen := guard.Open("o1", models.PaymentMethodBankTransfer)
	resolver := NewPaymentResolver(backend, backend, guard, journal, "s1")

	errc := make(chan error, 1)
	go func() {
		_, err := resolver.Resolve(context.Background(), order, models.PaymentMethodBankTransfer, gen)
		errc <- err
	}()
	require.Eventually(t, func() bool { return backend.Creates() == 1 }, time.Second, time.Millisecond)

	guard.Open("o2", models.PaymentMethodBankTransfer)
	backend.ReleaseCreate("o1")

	assert.ErrorIs(t, <-errc, ErrSuperseded)
	require.Len(t, journal.Attempts, 1)
	assert.Equal(t, models.AttemptOutcomeAbandoned, journal.Attempts[0].Outcome)
	assert.Equal(t, "pay-1", journal.Attempts[0].PaymentIDs)
	assert.Equal(t, gen.Seq(), journal.Attempts[0].Generation)
	assert.Equal(t, "s1", journal.Attempts[0].SessionID)
}
