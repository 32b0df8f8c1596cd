package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/shopspring/decimal"
)

var (
	ErrMockTransport = errors.New("mock transport error")
	ErrMockNotFound  = errors.New("mock not found")
)

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return baseTime.Add(time.Duration(ms) * time.Millisecond)
}

// MockBackend implements Backend for testing. Calls for an order block while
// its gate is open (see Hold/Release).
type MockBackend struct {
	mu sync.Mutex

	Orders      map[string]models.Order
	OrderErr    map[string]error
	Products    map[string]models.Product
	ProductErr  map[string]error
	Existing    map[string][]models.Payment
	PaymentsErr error
	CreateFunc  func(orderID string, method models.PaymentMethod, call int) ([]models.Payment, error)

	orderGates  map[string]chan struct{}
	createGates map[string]chan struct{}

	OrderCalls   map[string]int
	ProductCalls map[string]int
	CreateCalls  int
	FetchCalls   int
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Orders:       make(map[string]models.Order),
		OrderErr:     make(map[string]error),
		Products:     make(map[string]models.Product),
		ProductErr:   make(map[string]error),
		Existing:     make(map[string][]models.Payment),
		orderGates:   make(map[string]chan struct{}),
		createGates:  make(map[string]chan struct{}),
		OrderCalls:   make(map[string]int),
		ProductCalls: make(map[string]int),
	}
}

// AddOrder registers a simple order with one item per enterprise id given.
func (m *MockBackend) AddOrder(id string, total int64, enterprises ...string) models.Order {
	order := models.Order{
		ID:          id,
		TotalAmount: decimal.NewFromInt(total),
		Status:      models.OrderStatusPending,
		CreatedAt:   baseTime,
	}
	for i, enterprise := range enterprises {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    fmt.Sprintf("%s-p%d", id, i),
			Quantity:     1,
			UnitPrice:    decimal.NewFromInt(total / int64(len(enterprises))),
			EnterpriseID: enterprise,
		})
	}
	m.mu.Lock()
	m.Orders[id] = order
	m.mu.Unlock()
	return order
}

func (m *MockBackend) HoldOrder(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orderGates[orderID] = make(chan struct{})
}

func (m *MockBackend) ReleaseOrder(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.orderGates[orderID]; ok {
		close(ch)
		delete(m.orderGates, orderID)
	}
}

func (m *MockBackend) HoldCreate(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createGates[orderID] = make(chan struct{})
}

func (m *MockBackend) ReleaseCreate(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.createGates[orderID]; ok {
		close(ch)
		delete(m.createGates, orderID)
	}
}

func (m *MockBackend) wait(ctx context.Context, gates map[string]chan struct{}, key string) error {
	m.mu.Lock()
	ch := gates[key]
	m.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockBackend) FetchOrder(ctx context.Context, orderID string) (models.Order, error) {
	m.mu.Lock()
	m.OrderCalls[orderID]++
	m.mu.Unlock()

	if err := m.wait(ctx, m.orderGates, orderID); err != nil {
		return models.Order{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.OrderErr[orderID]; err != nil {
		return models.Order{}, err
	}
	order, ok := m.Orders[orderID]
	if !ok {
		return models.Order{}, ErrMockNotFound
	}
	return order.Clone(), nil
}

func (m *MockBackend) FetchProduct(ctx context.Context, productID string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProductCalls[productID]++
	if err := m.ProductErr[productID]; err != nil {
		return models.Product{}, err
	}
	product, ok := m.Products[productID]
	if !ok {
		return models.Product{}, ErrMockNotFound
	}
	return product, nil
}

func (m *MockBackend) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls++
	if m.PaymentsErr != nil {
		return nil, m.PaymentsErr
	}
	return append([]models.Payment(nil), m.Existing[orderID]...), nil
}

func (m *MockBackend) CreatePayment(ctx context.Context, orderID string, method models.PaymentMethod) ([]models.Payment, error) {
	m.mu.Lock()
	m.CreateCalls++
	call := m.CreateCalls
	m.mu.Unlock()

	if err := m.wait(ctx, m.createGates, orderID); err != nil {
		return nil, err
	}

	if m.CreateFunc != nil {
		return m.CreateFunc(orderID, method, call)
	}
	payment := bankPayment(fmt.Sprintf("pay-%d", call), orderID, 250000, at(call*10000))
	payment.Reference = fmt.Sprintf("REF%d", call)
	return []models.Payment{payment}, nil
}

func (m *MockBackend) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateCalls
}

func (m *MockBackend) OrderFetches(orderID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.OrderCalls[orderID]
}

func bankPayment(id, orderID string, amount int64, createdAt time.Time) models.Payment {
	return models.Payment{
		ID:        id,
		OrderID:   orderID,
		Method:    models.PaymentMethodBankTransfer,
		Amount:    decimal.NewFromInt(amount),
		Status:    models.PaymentStatusPending,
		CreatedAt: createdAt,
	}
}

// MockJournal records attempts in memory.
type MockJournal struct {
	mu       sync.Mutex
	Attempts []models.PaymentAttempt
	Err      error
}

func (j *MockJournal) Record(ctx context.Context, attempt models.PaymentAttempt) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Attempts = append(j.Attempts, attempt)
	return j.Err
}

func (j *MockJournal) Outcomes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []string
	for _, a := range j.Attempts {
		out = append(out, a.Outcome)
	}
	return out
}
