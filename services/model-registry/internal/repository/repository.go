package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"maas-platform/services/model-registry/internal/models"
)

var (
	// ErrModelNotFound is returned when the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")
	// ErrDuplicateModel is returned when a model with the same name and
	// version already exists.
	ErrDuplicateModel = errors.New("model with this name and version already exists")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Filter holds the criteria for listing models. All set criteria are combined
// conjunctively. Tags matches models carrying at least one of the given tag
// names.
type Filter struct {
	Name      string
	Framework string
	Status    string
	OwnerID   uuid.UUID
	TenantID  uuid.UUID
	Tags      []string
	IsPublic  *bool
}

// Pagination holds 1-based page selection.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize coerces the page to >= 1 and the limit into (0, 100], defaulting
// to 20.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > maxLimit {
		p.Limit = defaultLimit
	}
	return p
}

// Offset translates the page selection to a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ModelRepository is the storage contract for registered models. It has a
// GORM-backed production implementation and an in-memory implementation used
// for tests and standalone runs; callers pick one at construction time.
type ModelRepository interface {
	Create(ctx context.Context, m *models.Model) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error)
	GetByNameVersion(ctx context.Context, name, version string) (*models.Model, error)
	List(ctx context.Context, filter Filter, page Pagination) ([]*models.Model, int64, error)
	Update(ctx context.Context, m *models.Model) (*models.Model, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	AddTags(ctx context.Context, modelID uuid.UUID, tags []string) error
	RemoveTags(ctx context.Context, modelID uuid.UUID, tags []string) error

	SetMetadata(ctx context.Context, modelID uuid.UUID, metadata map[string]string) error
	GetMetadata(ctx context.Context, modelID uuid.UUID) (map[string]string, error)
}
