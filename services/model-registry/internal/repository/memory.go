package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"maas-platform/services/model-registry/internal/models"
)

// MemoryModelRepository is a mutex-guarded, map-backed ModelRepository with
// the same observable semantics as the GORM implementation. It backs tests
// and standalone (non-persistent) registry runs.
type MemoryModelRepository struct {
	mu     sync.RWMutex
	models map[uuid.UUID]*models.Model
	tags   map[string]models.Tag
}

func NewMemoryModelRepository() *MemoryModelRepository {
	return &MemoryModelRepository{
		models: make(map[uuid.UUID]*models.Model),
		tags:   make(map[string]models.Tag),
	}
}

func (r *MemoryModelRepository) Create(ctx context.Context, m *models.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.models {
		if existing.Name == m.Name && existing.Version == m.Version {
			return ErrDuplicateModel
		}
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	r.models[m.ID] = copyModel(m)
	return nil
}

func (r *MemoryModelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[id]
	if !ok {
		return nil, ErrModelNotFound
	}
	return copyModel(m), nil
}

func (r *MemoryModelRepository) GetByNameVersion(ctx context.Context, name, version string) (*models.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.models {
		if m.Name == name && m.Version == version {
			return copyModel(m), nil
		}
	}
	return nil, ErrModelNotFound
}

func (r *MemoryModelRepository) List(ctx context.Context, filter Filter, page Pagination) ([]*models.Model, int64, error) {
	page = page.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Model
	for _, m := range r.models {
		if matchesFilter(m, filter) {
			matched = append(matched, m)
		}
	}

	// Newest first, id as the tie-breaker, mirroring the SQL ordering.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := int64(len(matched))

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*models.Model, 0, end-start)
	for _, m := range matched[start:end] {
		result = append(result, copyModel(m))
	}
	return result, total, nil
}

func matchesFilter(m *models.Model, filter Filter) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Framework != "" && m.Framework != filter.Framework {
		return false
	}
	if filter.Status != "" && m.Status != filter.Status {
		return false
	}
	if filter.OwnerID != uuid.Nil && m.OwnerID != filter.OwnerID {
		return false
	}
	if filter.TenantID != uuid.Nil && m.TenantID != filter.TenantID {
		return false
	}
	if filter.IsPublic != nil && m.IsPublic != *filter.IsPublic {
		return false
	}
	if len(filter.Tags) > 0 {
		attached := make(map[string]bool, len(m.Tags))
		for _, tag := range m.Tags {
			attached[tag.Name] = true
		}
		any := false
		for _, name := range filter.Tags {
			if attached[name] {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func (r *MemoryModelRepository) Update(ctx context.Context, m *models.Model) (*models.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.models[m.ID]
	if !ok {
		return nil, ErrModelNotFound
	}

	for _, other := range r.models {
		if other.ID != m.ID && other.Name == m.Name && other.Version == m.Version {
			return nil, ErrDuplicateModel
		}
	}

	stored.Name = m.Name
	stored.Version = m.Version
	stored.Description = m.Description
	stored.Framework = m.Framework
	stored.Status = m.Status
	stored.StoragePath = m.StoragePath
	stored.SizeBytes = m.SizeBytes
	stored.Checksum = m.Checksum
	stored.DockerImage = m.DockerImage
	stored.IsPublic = m.IsPublic
	stored.UpdatedAt = time.Now().UTC()

	return copyModel(stored), nil
}

func (r *MemoryModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[id]; !ok {
		return ErrModelNotFound
	}
	// Metadata rows die with the model; shared tag rows stay behind.
	delete(r.models, id)
	return nil
}

func (r *MemoryModelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[id]
	if !ok {
		return ErrModelNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryModelRepository) AddTags(ctx context.Context, modelID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[modelID]
	if !ok {
		return ErrModelNotFound
	}

	attached := make(map[string]bool, len(m.Tags))
	for _, tag := range m.Tags {
		attached[tag.Name] = true
	}

	for _, name := range tags {
		if attached[name] {
			continue
		}
		tag, ok := r.tags[name]
		if !ok {
			tag = models.Tag{ID: uuid.New(), Name: name}
			r.tags[name] = tag
		}
		m.Tags = append(m.Tags, tag)
		attached[name] = true
	}
	return nil
}

func (r *MemoryModelRepository) RemoveTags(ctx context.Context, modelID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[modelID]
	if !ok {
		return ErrModelNotFound
	}

	remove := make(map[string]bool, len(tags))
	for _, name := range tags {
		remove[name] = true
	}

	kept := m.Tags[:0]
	for _, tag := range m.Tags {
		if !remove[tag.Name] {
			kept = append(kept, tag)
		}
	}
	m.Tags = kept
	return nil
}

func (r *MemoryModelRepository) SetMetadata(ctx context.Context, modelID uuid.UUID, metadata map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[modelID]
	if !ok {
		return ErrModelNotFound
	}

	now := time.Now().UTC()
	entries := make([]models.ModelMetadata, 0, len(metadata))
	for key, value := range metadata {
		value := value
		entries = append(entries, models.ModelMetadata{
			ID:        uuid.New(),
			ModelID:   modelID,
			Key:       key,
			Value:     &value,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	m.Metadata = entries
	return nil
}

func (r *MemoryModelRepository) GetMetadata(ctx context.Context, modelID uuid.UUID) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[modelID]
	if !ok {
		return map[string]string{}, nil
	}
	return m.MetadataMap(), nil
}

func copyModel(m *models.Model) *models.Model {
	clone := *m
	clone.Tags = make([]models.Tag, len(m.Tags))
	copy(clone.Tags, m.Tags)
	clone.Metadata = make([]models.ModelMetadata, len(m.Metadata))
	for i, entry := range m.Metadata {
		clone.Metadata[i] = entry
		if entry.Value != nil {
			value := *entry.Value
			clone.Metadata[i].Value = &value
		}
	}
	return &clone
}
