package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maas-platform/services/model-registry/internal/models"
)

// GormModelRepository implements ModelRepository on PostgreSQL via GORM.
type GormModelRepository struct {
	db *gorm.DB
}

func NewGormModelRepository(db *gorm.DB) *GormModelRepository {
	return &GormModelRepository{db: db}
}

// Create inserts a new model. A pre-check catches most duplicate
// (name, version) pairs; the unique constraint is the authoritative guard
// against races and is translated to ErrDuplicateModel as well.
func (r *GormModelRepository) Create(ctx context.Context, m *models.Model) error {
	var existing models.Model
	err := r.db.WithContext(ctx).
		Where("name = ? AND version = ?", m.Name, m.Version).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateModel
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for duplicate model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateModel
		}
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

func (r *GormModelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	var m models.Model
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Metadata").
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return &m, nil
}

func (r *GormModelRepository) GetByNameVersion(ctx context.Context, name, version string) (*models.Model, error) {
	var m models.Model
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Metadata").
		Where("name = ? AND version = ?", name, version).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return &m, nil
}

// List returns one page of models plus the total count of matches. Results
// are ordered newest first with the id as an explicit tie-breaker so paging
// is deterministic on coarse timestamps.
func (r *GormModelRepository) List(ctx context.Context, filter Filter, page Pagination) ([]*models.Model, int64, error) {
	page = page.Normalize()

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Model{}), filter)
	if err := countQuery.Distinct("models.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count models: %w", err)
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Model{}), filter)
	if len(filter.Tags) > 0 {
		query = query.Distinct("models.*")
	}

	var result []*models.Model
	err := query.
		Preload("Tags").
		Preload("Metadata").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&result).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list models: %w", err)
	}

	return result, total, nil
}

func (r *GormModelRepository) applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.Name != "" {
		query = query.Where("models.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Framework != "" {
		query = query.Where("models.framework = ?", filter.Framework)
	}
	if filter.Status != "" {
		query = query.Where("models.status = ?", filter.Status)
	}
	if filter.OwnerID != uuid.Nil {
		query = query.Where("models.owner_id = ?", filter.OwnerID)
	}
	if filter.TenantID != uuid.Nil {
		query = query.Where("models.tenant_id = ?", filter.TenantID)
	}
	if filter.IsPublic != nil {
		query = query.Where("models.is_public = ?", *filter.IsPublic)
	}
	if len(filter.Tags) > 0 {
		query = query.
			Joins("JOIN model_tags ON model_tags.model_id = models.id").
			Joins("JOIN tags ON tags.id = model_tags.tag_id").
			Where("tags.name IN ?", filter.Tags)
	}
	return query
}

// Update persists scalar field changes made on an already-fetched model and
// returns the refreshed row.
func (r *GormModelRepository) Update(ctx context.Context, m *models.Model) (*models.Model, error) {
	err := r.db.WithContext(ctx).
		Omit("Tags", "Metadata").
		Save(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateModel
		}
		return nil, fmt.Errorf("failed to update model: %w", err)
	}
	return r.GetByID(ctx, m.ID)
}

// Delete removes the model, its metadata rows and its tag associations. Tag
// rows themselves are shared and stay behind.
func (r *GormModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Model
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModelNotFound
			}
			return fmt.Errorf("failed to get model: %w", err)
		}

		if err := tx.Model(&m).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		if err := tx.Where("model_id = ?", id).Delete(&models.ModelMetadata{}).Error; err != nil {
			return fmt.Errorf("failed to delete metadata: %w", err)
		}
		if err := tx.Delete(&m).Error; err != nil {
			return fmt.Errorf("failed to delete model: %w", err)
		}
		return nil
	})
}

// UpdateStatus sets the status without validating the value; lifecycle rules
// live outside the registry.
func (r *GormModelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrModelNotFound
	}
	return nil
}

// AddTags associates the named tags with the model, creating tag rows for
// names seen for the first time and reusing existing ones otherwise.
func (r *GormModelRepository) AddTags(ctx context.Context, modelID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Model
		err := tx.Preload("Tags").First(&m, "id = ?", modelID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get model: %w", err)
		}

		attached := make(map[string]bool, len(m.Tags))
		for _, tag := range m.Tags {
			attached[tag.Name] = true
		}

		for _, name := range tags {
			if attached[name] {
				continue
			}

			var tag models.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: name}
				if err := tx.Create(&tag).Error; err != nil {
					return fmt.Errorf("failed to create tag %q: %w", name, err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up tag %q: %w", name, err)
			}

			if err := tx.Model(&m).Association("Tags").Append(&tag); err != nil {
				return fmt.Errorf("failed to attach tag %q: %w", name, err)
			}
			attached[name] = true
		}
		return nil
	})
}

// RemoveTags detaches the named tags from the model. The tag rows are shared
// with other models and are left in place.
func (r *GormModelRepository) RemoveTags(ctx context.Context, modelID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Model
		err := tx.Preload("Tags").First(&m, "id = ?", modelID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get model: %w", err)
		}

		remove := make(map[string]bool, len(tags))
		for _, name := range tags {
			remove[name] = true
		}

		var detach []models.Tag
		for _, tag := range m.Tags {
			if remove[tag.Name] {
				detach = append(detach, tag)
			}
		}
		if len(detach) == 0 {
			return nil
		}

		if err := tx.Model(&m).Association("Tags").Delete(&detach); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		return nil
	})
}

// SetMetadata replaces the model's metadata wholesale: every existing row is
// deleted before the new set is inserted. An empty map clears all metadata.
func (r *GormModelRepository) SetMetadata(ctx context.Context, modelID uuid.UUID, metadata map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Model
		err := tx.Select("id").First(&m, "id = ?", modelID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get model: %w", err)
		}

		if err := tx.Where("model_id = ?", modelID).Delete(&models.ModelMetadata{}).Error; err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}

		for key, value := range metadata {
			value := value
			entry := models.ModelMetadata{
				ModelID: modelID,
				Key:     key,
				Value:   &value,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to insert metadata key %q: %w", key, err)
			}
		}
		return nil
	})
}

// GetMetadata returns the model's metadata as a map. It does not check model
// existence; a missing or annotation-free model yields an empty map.
func (r *GormModelRepository) GetMetadata(ctx context.Context, modelID uuid.UUID) (map[string]string, error) {
	var entries []models.ModelMetadata
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	md := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.Value == nil {
			md[entry.Key] = ""
			continue
		}
		md[entry.Key] = *entry.Value
	}
	return md, nil
}
