package checkout

import (
	"sync"

	"github.com/Govind-619/MarketSphere/models"
)

// Generation identifies one (order, method) selection of a session. Every
// asynchronous step captures the generation it started under and checks it
// with the Guard before writing shared state.
type Generation struct {
	seq     uint64
	OrderID string
	Method  models.PaymentMethod
}

// Seq is the generation's ordinal; zero means "no generation".
func (g Generation) Seq() uint64 { return g.seq }

func (g Generation) IsZero() bool { return g.seq == 0 }

// Guard tracks the active generation. Opening a generation supersedes the
// previous one permanently; generations are never reactivated.
type Guard struct {
	mu     sync.Mutex
	seq    uint64
	active Generation
}

func NewGuard() *Guard {
	return &Guard{}
}

// Open starts a new generation for orderID/method and invalidates the previous one.
func (g *Guard) Open(orderID string, method models.PaymentMethod) Generation {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.active = Generation{seq: g.seq, OrderID: orderID, Method: method}
	return g.active
}

// IsCurrent reports whether gen is still the active generation.
func (g *Guard) IsCurrent(gen Generation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !gen.IsZero() && gen.seq == g.active.seq
}

// Current returns the active generation, if any.
func (g *Guard) Current() (Generation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active, !g.active.IsZero()
}

// Teardown invalidates gen if it is still active. Tearing down a generation
// that was already superseded is a no-op.
func (g *Guard) Teardown(gen Generation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !gen.IsZero() && gen.seq == g.active.seq {
		g.active = Generation{}
	}
}
