package checkout

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Govind-619/MarketSphere/utils"
)

// SessionFactory builds the session for a viewer. token is the viewer's API
// credential; the session's backend calls run with it.
type SessionFactory func(id, token string) *Session

type registryEntry struct {
	session *Session
	token   string
}

// Registry holds the live sessions keyed by viewer session id. It keeps at
// most size sessions; the least recently used one is closed on overflow.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache
	factory SessionFactory
}

func NewRegistry(size int, factory SessionFactory) (*Registry, error) {
	cache, err := lru.NewWithEvict(size, func(key, value interface{}) {
		entry := value.(*registryEntry)
		utils.LogDebug("Evicting checkout session %v", key)
		entry.session.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session registry: %v", err)
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the session for id without creating one.
func (r *Registry) Get(id string) (*Session, bool) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*registryEntry).session, true
}

// Acquire returns the session for id, creating it when absent. A session
// created under a different token is replaced, since its backend calls would
// run with stale credentials.
func (r *Registry) Acquire(id, token string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(id); ok {
		entry := v.(*registryEntry)
		if entry.token == token {
			return entry.session
		}
		utils.LogInfo("Credentials changed for checkout session %s, starting over", id)
		r.cache.Remove(id)
	}
	entry := &registryEntry{session: r.factory(id, token), token: token}
	r.cache.Add(id, entry)
	return entry.session
}

// Remove closes and forgets the session for id.
func (r *Registry) Remove(id string) bool {
	return r.cache.Remove(id)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close closes every session.
func (r *Registry) Close() {
	r.cache.Purge()
}
