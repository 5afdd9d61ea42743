package namespace

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process namespace. It is the default backend and the one
// tests inject.
type Memory struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemory creates an empty in-memory namespace.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// MemoryRegistry keeps one Memory per scope. A scope is registered on its
// first write, so reading an unknown scope allocates nothing. Scopes unused
// for longer than idle are dropped; idle <= 0 keeps them forever.
type MemoryRegistry struct {
	scopes map[string]*memoryEntry
	idle   time.Duration
	swept  time.Time
	now    func() time.Time
	mu     sync.Mutex
}

type memoryEntry struct {
	mem  *Memory
	used time.Time
}

func NewMemoryRegistry(idle time.Duration) *MemoryRegistry {
	r := &MemoryRegistry{scopes: make(map[string]*memoryEntry), idle: idle, now: time.Now}
	r.swept = r.now()
	return r
}

// Open returns the namespace for scope.
func (r *MemoryRegistry) Open(scope string) Namespace {
	return &memoryScope{reg: r, scope: scope}
}

// Has reports whether scope currently holds a registered Memory.
func (r *MemoryRegistry) Has(scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.scopes[scope]
	return ok
}

// Len reports how many scopes are registered.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

// lookup returns the Memory of scope, creating it when create is set. It
// returns nil for an unknown scope otherwise.
func (r *MemoryRegistry) lookup(scope string, create bool) *Memory {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepLocked(now)
	e, ok := r.scopes[scope]
	if !ok {
		if !create {
			return nil
		}
		e = &memoryEntry{mem: NewMemory()}
		r.scopes[scope] = e
	}
	e.used = now
	return e.mem
}

// sweepLocked drops idle scopes, at most once per idle period.
func (r *MemoryRegistry) sweepLocked(now time.Time) {
	if r.idle <= 0 || now.Sub(r.swept) < r.idle {
		return
	}
	for scope, e := range r.scopes {
		if now.Sub(e.used) >= r.idle {
			delete(r.scopes, scope)
		}
	}
	r.swept = now
}

// memoryScope is the Namespace view of one scope in a MemoryRegistry.
type memoryScope struct {
	reg   *MemoryRegistry
	scope string
}

func (s *memoryScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	m := s.reg.lookup(s.scope, false)
	if m == nil {
		return "", false, nil
	}
	return m.GetItem(ctx, key)
}

func (s *memoryScope) SetItem(ctx context.Context, key, value string) error {
	return s.reg.lookup(s.scope, true).SetItem(ctx, key, value)
}

func (s *memoryScope) RemoveItem(ctx context.Context, key string) error {
	m := s.reg.lookup(s.scope, false)
	if m == nil {
		return nil
	}
	return m.RemoveItem(ctx, key)
}
