package store

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultSessionIdleTTL is how long an untouched session keeps its
// in-process store before it is evicted. The local lane outlives the
// eviction, so a returning session re-hydrates its draft.
const DefaultSessionIdleTTL = 30 * time.Minute

// Manager hands out one CampaignStore per browser session. Stores are
// constructed and hydrated on first use and evicted once idle, so
// arbitrary session keys cannot grow the process without bound.
type Manager struct {
	mu      sync.Mutex
	stores  *gocache.Cache
	factory func(sessionKey string) *CampaignStore
}

func NewManager(factory func(sessionKey string) *CampaignStore) *Manager {
	return NewManagerWithTTL(factory, DefaultSessionIdleTTL)
}

func NewManagerWithTTL(factory func(sessionKey string) *CampaignStore, idleTTL time.Duration) *Manager {
	stores := gocache.New(idleTTL, idleTTL)
	stores.OnEvicted(func(_ string, v interface{}) {
		v.(*CampaignStore).Close()
	})
	return &Manager{stores: stores, factory: factory}
}

// Get returns the session's store, refreshing its idle window.
func (m *Manager) Get(sessionKey string) *CampaignStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.stores.Get(sessionKey); ok {
		s := v.(*CampaignStore)
		m.stores.SetDefault(sessionKey, s)
		return s
	}
	s := m.factory(sessionKey)
	m.stores.SetDefault(sessionKey, s)
	go s.Hydrate(context.Background())
	return s
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.stores.Items() {
		item.Object.(*CampaignStore).Close()
	}
	m.stores.Flush()
}
