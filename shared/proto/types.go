package proto

import "time"

// Model is the wire representation of a registered model.
type Model struct {
	Id          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Version     string            `json:"version"`
	Framework   string            `json:"framework,omitempty"`
	Status      string            `json:"status"`
	StoragePath string            `json:"storage_path,omitempty"`
	SizeBytes   int64             `json:"size_bytes"`
	Checksum    string            `json:"checksum,omitempty"`
	DockerImage string            `json:"docker_image,omitempty"`
	IsPublic    bool              `json:"is_public"`
	OwnerId     string            `json:"owner_id"`
	TenantId    string            `json:"tenant_id"`
	Tags        []string          `json:"tags,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreateModelRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Version     string            `json:"version"`
	Framework   string            `json:"framework,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	OwnerId     string            `json:"owner_id,omitempty"`
	TenantId    string            `json:"tenant_id,omitempty"`
	IsPublic    bool              `json:"is_public"`
}

type CreateModelResponse struct {
	Model *Model `json:"model"`
}

type GetModelRequest struct {
	Id string `json:"id"`
}

type GetModelResponse struct {
	Model *Model `json:"model"`
}

type ListModelsRequest struct {
	Name      string   `json:"name,omitempty"`
	Framework string   `json:"framework,omitempty"`
	Status    string   `json:"status,omitempty"`
	OwnerId   string   `json:"owner_id,omitempty"`
	TenantId  string   `json:"tenant_id,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsPublic  *bool    `json:"is_public,omitempty"`
	Page      int32    `json:"page,omitempty"`
	Limit     int32    `json:"limit,omitempty"`
}

type ListModelsResponse struct {
	Models []*Model `json:"models"`
	Total  int64    `json:"total"`
	Page   int32    `json:"page"`
	Limit  int32    `json:"limit"`
}

// UpdateModelRequest carries a partial update. Nil fields (and nil Tags or
// Metadata) mean "leave unchanged"; an empty non-nil Tags or Metadata clears
// the corresponding set.
type UpdateModelRequest struct {
	Id          string            `json:"id"`
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	IsPublic    *bool             `json:"is_public,omitempty"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
}

type UpdateModelResponse struct {
	Model *Model `json:"model"`
}

type DeleteModelRequest struct {
	Id string `json:"id"`
}

type UpdateModelStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type UpdateModelStatusResponse struct {
	Model *Model `json:"model"`
}

type AddModelTagsRequest struct {
	ModelId string   `json:"model_id"`
	Tags    []string `json:"tags"`
}

type RemoveModelTagsRequest struct {
	ModelId string   `json:"model_id"`
	Tags    []string `json:"tags"`
}

type SetModelMetadataRequest struct {
	ModelId  string            `json:"model_id"`
	Metadata map[string]string `json:"metadata"`
}

type GetModelMetadataRequest struct {
	ModelId string `json:"model_id"`
}

type GetModelMetadataResponse struct {
	Metadata map[string]string `json:"metadata"`
}

// Empty mirrors google.protobuf.Empty for RPCs with no payload.
type Empty struct{}
