package checkout

import (
	"context"

	"github.com/Govind-619/MarketSphere/models"
)

type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID string) (models.Order, error)
}

type ProductFetcher interface {
	FetchProduct(ctx context.Context, productID string) (models.Product, error)
}

type PaymentFetcher interface {
	FetchPaymentsForOrder(ctx context.Context, orderID string) ([]models.Payment, error)
}

// PaymentCreator creates the payment records of one checkout action. A single
// call may yield several records, e.g. one per enterprise of the order.
type PaymentCreator interface {
	CreatePayment(ctx context.Context, orderID string, method models.PaymentMethod) ([]models.Payment, error)
}

// Backend is the marketplace API as seen by a checkout session.
type Backend interface {
	OrderFetcher
	ProductFetcher
	PaymentFetcher
	PaymentCreator
}

// Journal records bank-transfer creation attempts.
type Journal interface {
	Record(ctx context.Context, attempt models.PaymentAttempt) error
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, models.PaymentAttempt) error { return nil }
