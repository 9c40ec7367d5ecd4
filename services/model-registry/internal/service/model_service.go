package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"maas-platform/services/model-registry/internal/models"
	"maas-platform/services/model-registry/internal/repository"
)

var (
	// ErrNotFound is returned when the requested model does not exist.
	ErrNotFound = errors.New("model not found")
	// ErrDuplicate is returned when a (name, version) pair is already taken.
	ErrDuplicate = errors.New("model with this name and version already exists")
	// ErrInvalidInput is returned for malformed identifiers or values
	// outside the accepted enumerations.
	ErrInvalidInput = errors.New("invalid input")
)

// CreateModelRequest carries the fields for registering a new model.
type CreateModelRequest struct {
	Name        string
	Description string
	Version     string
	Framework   string
	Tags        []string
	Metadata    map[string]string
	OwnerID     string
	TenantID    string
	IsPublic    bool
}

// UpdateModelRequest carries a partial update; nil fields are left unchanged.
type UpdateModelRequest struct {
	Name        *string
	Description *string
	IsPublic    *bool
	Tags        []string
	Metadata    map[string]string
}

// ListModelsRequest carries list filters plus pagination. Owner and tenant
// are string-typed; empty or malformed values mean "no filter".
type ListModelsRequest struct {
	Name      string
	Framework string
	Status    string
	OwnerID   string
	TenantID  string
	Tags      []string
	IsPublic  *bool
	Page      int
	Limit     int
}

// ListModelsResult is one page of models plus the total match count.
type ListModelsResult struct {
	Models []*models.Model
	Total  int64
	Page   int
	Limit  int
}

// ModelService implements the registry's business rules on top of a
// ModelRepository.
type ModelService struct {
	repo   repository.ModelRepository
	logger *zap.Logger
}

func NewModelService(repo repository.ModelRepository, logger *zap.Logger) *ModelService {
	return &ModelService{repo: repo, logger: logger}
}

// CreateModel validates the request, registers the model with status
// "pending" and then applies tags and metadata. The tag and metadata steps
// run after the base row is committed: a failure there leaves a created but
// partially populated model behind, which is surfaced as an internal error
// rather than compensated.
func (s *ModelService) CreateModel(ctx context.Context, req CreateModelRequest) (*models.Model, error) {
	if req.Framework != "" && !models.ValidFrameworks[models.ModelFramework(req.Framework)] {
		return nil, fmt.Errorf("%w: invalid framework %q", ErrInvalidInput, req.Framework)
	}

	m := &models.Model{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Framework:   req.Framework,
		Status:      models.StatusPending,
		OwnerID:     fallbackUUID(req.OwnerID),
		TenantID:    fallbackUUID(req.TenantID),
		IsPublic:    req.IsPublic,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicateModel) {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicate, req.Name, req.Version)
		}
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.repo.AddTags(ctx, m.ID, req.Tags); err != nil {
			s.logger.Error("model created but tag application failed",
				zap.String("model_id", m.ID.String()), zap.Error(err))
			return nil, err
		}
	}
	if len(req.Metadata) > 0 {
		if err := s.repo.SetMetadata(ctx, m.ID, req.Metadata); err != nil {
			s.logger.Error("model created but metadata application failed",
				zap.String("model_id", m.ID.String()), zap.Error(err))
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, m.ID)
}

func (s *ModelService) GetModel(ctx context.Context, id string) (*models.Model, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, modelID)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *ModelService) ListModels(ctx context.Context, req ListModelsRequest) (*ListModelsResult, error) {
	filter := repository.Filter{
		Name:      req.Name,
		Framework: req.Framework,
		Status:    req.Status,
		OwnerID:   lenientUUID(req.OwnerID),
		TenantID:  lenientUUID(req.TenantID),
		Tags:      req.Tags,
		IsPublic:  req.IsPublic,
	}
	page := repository.Pagination{Page: req.Page, Limit: req.Limit}.Normalize()

	result, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return &ListModelsResult{
		Models: result,
		Total:  total,
		Page:   page.Page,
		Limit:  page.Limit,
	}, nil
}

// UpdateModel applies the present fields of a partial update. Tags are
// reconciled against the current set with the minimal add/remove calls;
// metadata, when present, is replaced wholesale.
func (s *ModelService) UpdateModel(ctx context.Context, id string, req UpdateModelRequest) (*models.Model, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, modelID)
	if err != nil {
		return nil, translate(err)
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.IsPublic != nil {
		m.IsPublic = *req.IsPublic
	}

	updated, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, translate(err)
	}

	if req.Tags != nil {
		existing := make(map[string]bool, len(m.Tags))
		for _, tag := range m.Tags {
			existing[tag.Name] = true
		}
		desired := make(map[string]bool, len(req.Tags))
		for _, name := range req.Tags {
			desired[name] = true
		}

		var add, remove []string
		for name := range desired {
			if !existing[name] {
				add = append(add, name)
			}
		}
		for name := range existing {
			if !desired[name] {
				remove = append(remove, name)
			}
		}

		if err := s.repo.AddTags(ctx, modelID, add); err != nil {
			return nil, translate(err)
		}
		if err := s.repo.RemoveTags(ctx, modelID, remove); err != nil {
			return nil, translate(err)
		}
	}

	if req.Metadata != nil {
		if err := s.repo.SetMetadata(ctx, modelID, req.Metadata); err != nil {
			return nil, translate(err)
		}
	}

	if req.Tags != nil || req.Metadata != nil {
		return s.repo.GetByID(ctx, modelID)
	}
	return updated, nil
}

func (s *ModelService) DeleteModel(ctx context.Context, id string) error {
	modelID, err := parseID(id)
	if err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, modelID))
}

func (s *ModelService) UpdateModelStatus(ctx context.Context, id, status string) (*models.Model, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, modelID, status); err != nil {
		return nil, translate(err)
	}

	m, err := s.repo.GetByID(ctx, modelID)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *ModelService) AddModelTags(ctx context.Context, id string, tags []string) error {
	modelID, err := parseID(id)
	if err != nil {
		return err
	}
	return translate(s.repo.AddTags(ctx, modelID, tags))
}

func (s *ModelService) RemoveModelTags(ctx context.Context, id string, tags []string) error {
	modelID, err := parseID(id)
	if err != nil {
		return err
	}
	return translate(s.repo.RemoveTags(ctx, modelID, tags))
}

func (s *ModelService) SetModelMetadata(ctx context.Context, id string, metadata map[string]string) error {
	modelID, err := parseID(id)
	if err != nil {
		return err
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return translate(s.repo.SetMetadata(ctx, modelID, metadata))
}

func (s *ModelService) GetModelMetadata(ctx context.Context, id string) (map[string]string, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetMetadata(ctx, modelID)
}

// translate maps repository errors onto the service error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrModelNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateModel):
		return ErrDuplicate
	default:
		return err
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid model id %q", ErrInvalidInput, id)
	}
	return parsed, nil
}

// fallbackUUID parses the identity field, substituting a fresh UUID when the
// value is empty or malformed. Creation never rejects identity fields.
func fallbackUUID(value string) uuid.UUID {
	if value == "" {
		return uuid.New()
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.New()
	}
	return parsed
}

// lenientUUID parses a filter value, treating empty or malformed input as
// "no filter". Unlike creation, listing never invents identities.
func lenientUUID(value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
