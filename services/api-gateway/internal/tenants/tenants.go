package tenants

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTenantNotFound is returned when no tenant matches the lookup.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrNameTaken is returned when a create collides with an existing
	// tenant name.
	ErrNameTaken = errors.New("tenant name already registered")
)

// Tenant is an isolation boundary grouping users and their models.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps tenants in memory. Tenancy is advisory at this layer; the
// registry stores the tenant id per model but does not enforce isolation.
type Store struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]*Tenant
}

func NewStore() *Store {
	return &Store{tenants: make(map[uuid.UUID]*Tenant)}
}

func (s *Store) Create(ctx context.Context, name, plan string) (*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tenants {
		if existing.Name == name {
			return nil, ErrNameTaken
		}
	}

	if plan == "" {
		plan = "free"
	}
	now := time.Now().UTC()
	tenant := &Tenant{
		ID:        uuid.New(),
		Name:      name,
		Plan:      plan,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tenants[tenant.ID] = tenant

	cp := *tenant
	return &cp, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *tenant
	return &cp, nil
}

func (s *Store) List(ctx context.Context) []*Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Tenant, 0, len(s.tenants))
	for _, tenant := range s.tenants {
		cp := *tenant
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[id]; !ok {
		return ErrTenantNotFound
	}
	delete(s.tenants, id)
	return nil
}
