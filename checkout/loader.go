package checkout

import (
	"context"
	"sync"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// OrderLoader fetches an order and backfills the owning enterprise of items
// that arrive without one.
type OrderLoader struct {
	orders      OrderFetcher
	products    ProductFetcher
	guard       *Guard
	concurrency int

	// Loads of the same order id share one in-flight fetch, so rapid
	// navigation back to an order does not fetch it twice.
	flight singleflight.Group
}

func NewOrderLoader(orders OrderFetcher, products ProductFetcher, guard *Guard, concurrency int) *OrderLoader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &OrderLoader{
		orders:      orders,
		products:    products,
		guard:       guard,
		concurrency: concurrency,
	}
}

// Load fetches orderID for gen. It returns ErrSuperseded when gen stops being
// current before the enriched order is ready.
func (l *OrderLoader) Load(ctx context.Context, orderID string, gen Generation) (models.Order, error) {
	if !l.guard.IsCurrent(gen) {
		return models.Order{}, ErrSuperseded
	}

	v, err, shared := l.flight.Do(orderID, func() (interface{}, error) {
		return l.orders.FetchOrder(ctx, orderID)
	})
	if err != nil {
		utils.LogError("Failed to fetch order %s (generation %d): %v", orderID, gen.Seq(), err)
		return models.Order{}, newError(KindOrderFetch, orderID, "failed to load order", err)
	}
	if shared {
		utils.LogDebug("Order %s fetch shared with another in-flight load", orderID)
	}

	// The fetched value may be shared with other callers; enrich a copy.
	order := v.(models.Order).Clone()
	if order.ID != orderID {
		utils.LogError("Order id mismatch: requested %s, received %s", orderID, order.ID)
		return models.Order{}, newError(KindOrderIDMismatch, orderID, "order service returned a different order", nil)
	}

	l.backfillEnterprises(ctx, &order)

	if !l.guard.IsCurrent(gen) {
		utils.LogDebug("Discarding order %s for superseded generation %d", orderID, gen.Seq())
		return models.Order{}, ErrSuperseded
	}
	return order, nil
}

// backfillEnterprises looks up every product whose item lacks an enterprise.
// Lookups are best effort: failures are logged and the item stays as it was.
func (l *OrderLoader) backfillEnterprises(ctx context.Context, order *models.Order) {
	missing := make(map[string][]int)
	var productIDs []string
	for i, item := range order.Items {
		if !item.MissingEnterprise() || item.ProductID == "" {
			continue
		}
		if _, seen := missing[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		missing[item.ProductID] = append(missing[item.ProductID], i)
	}
	if len(productIDs) == 0 {
		return
	}
	utils.LogDebug("Backfilling enterprise for %d products of order %s", len(productIDs), order.ID)

	var (
		mu       sync.Mutex
		products = make(map[string]models.Product, len(productIDs))
		g        errgroup.Group
	)
	g.SetLimit(l.concurrency)
	for _, productID := range productIDs {
		productID := productID
		g.Go(func() error {
			product, err := l.products.FetchProduct(ctx, productID)
			if err != nil {
				lookupErr := newError(KindProductLookup, order.ID, "product lookup failed for "+productID, err)
				utils.LogError("%v", lookupErr)
				return nil
			}
			if product.EnterpriseID == "" {
				utils.LogDebug("Product %s has no enterprise either", productID)
				return nil
			}
			mu.Lock()
			products[productID] = product
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for productID, indexes := range missing {
		product, ok := products[productID]
		if !ok {
			continue
		}
		for _, i := range indexes {
			item := &order.Items[i]
			item.EnterpriseID = product.EnterpriseID
			if item.Name == "" {
				item.Name = product.Name
			}
			if item.ImageURL == "" {
				item.ImageURL = product.ImageURL
			}
		}
	}
}
