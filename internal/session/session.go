// Package session tracks the single logged-in user of a widget instance.
package session

import (
	"context"
	"strings"
	"sync"

	"logotherapy-booking/internal/model"
)

// Backend persists the session pointer. *store.Store satisfies it.
type Backend interface {
	SessionUser(ctx context.Context) (*model.User, error)
	SetSessionUser(ctx context.Context, u *model.User) error
}

// Manager caches the current user in memory and mirrors every change into
// the backend. The cache is only swapped after the backend write succeeds.
type Manager struct {
	backend Backend

	mu      sync.RWMutex
	current *model.User
}

func NewManager(b Backend) *Manager {
	return &Manager{backend: b}
}

// Init seeds the cache from the backend. Call once at startup.
func (m *Manager) Init(ctx context.Context) (*model.User, error) {
	u, err := m.backend.SessionUser(ctx)
	if err != nil {
		return nil, err
	}
	u = normalize(u)

	m.mu.Lock()
	m.current = u
	m.mu.Unlock()
	return clone(u), nil
}

// Current returns a copy of the cached user, or nil when logged out.
func (m *Manager) Current() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.current)
}

func (m *Manager) Save(ctx context.Context, u *model.User) (*model.User, error) {
	u = normalize(u)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.backend.SetSessionUser(ctx, u); err != nil {
		return nil, err
	}
	m.current = u
	return clone(u), nil
}

// Clear logs out. Clearing an empty session is not an error.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.backend.SetSessionUser(ctx, nil); err != nil {
		return err
	}
	m.current = nil
	return nil
}

// Close drops the in-memory pointer without touching the backend.
func (m *Manager) Close() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

func normalize(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Email = strings.ToLower(c.Email)
	return &c
}

func clone(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
