package checkout

import (
	"sort"
	"time"

	"github.com/Govind-619/MarketSphere/models"
)

// DefaultBatchWindow is how far behind the newest record a payment may have
// been created and still belong to the same checkout attempt.
const DefaultBatchWindow = 2 * time.Second

// Reconciler collapses payment records into the batch of the latest checkout attempt.
type Reconciler struct {
	Window time.Duration
}

func NewReconciler(window time.Duration) Reconciler {
	if window < 0 {
		window = DefaultBatchWindow
	}
	return Reconciler{Window: window}
}

// Reconcile returns the payments of orderID created within Window of the
// newest one. The window is anchored at the newest record; it does not chain.
func (r Reconciler) Reconcile(orderID string, payments []models.Payment) models.PaymentBatch {
	batch := models.PaymentBatch{OrderID: orderID}
	candidates := sortedNewestFirst(filterOrder(orderID, payments))
	if len(candidates) == 0 {
		return batch
	}

	tmax := candidates[0].CreatedAt
	for _, p := range candidates {
		if tmax.Sub(p.CreatedAt) > r.Window {
			break
		}
		batch.Payments = append(batch.Payments, p)
	}
	batch.Latest = tmax
	return batch
}

// latestOnly keeps the records sharing the newest creation timestamp.
func latestOnly(payments []models.Payment) []models.Payment {
	if len(payments) < 2 {
		return payments
	}
	sorted := sortedNewestFirst(payments)
	tmax := sorted[0].CreatedAt
	out := sorted[:0:0]
	for _, p := range sorted {
		if !p.CreatedAt.Equal(tmax) {
			break
		}
		out = append(out, p)
	}
	return out
}

func filterOrder(orderID string, payments []models.Payment) []models.Payment {
	var out []models.Payment
	for _, p := range payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

func sortedNewestFirst(payments []models.Payment) []models.Payment {
	sorted := make([]models.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
