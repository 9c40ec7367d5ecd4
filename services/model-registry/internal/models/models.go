package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModelFramework identifies the training framework of a registered model.
type ModelFramework string

const (
	FrameworkPyTorch    ModelFramework = "pytorch"
	FrameworkTensorFlow ModelFramework = "tensorflow"
	FrameworkONNX       ModelFramework = "onnx"
	FrameworkSklearn    ModelFramework = "sklearn"
	FrameworkXGBoost    ModelFramework = "xgboost"
	FrameworkCustom     ModelFramework = "custom"
)

// ValidFrameworks lists every accepted framework value. The empty string is
// also accepted and means "unspecified".
var ValidFrameworks = map[ModelFramework]bool{
	FrameworkPyTorch:    true,
	FrameworkTensorFlow: true,
	FrameworkONNX:       true,
	FrameworkSklearn:    true,
	FrameworkXGBoost:    true,
	FrameworkCustom:     true,
}

// StatusPending is the initial status of every registered model. Status is
// otherwise free-form; lifecycle workflows own the transition rules.
const StatusPending = "pending"

// Model represents a registered ML artifact.
type Model struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_models_name_version" json:"name"`
	Version     string    `gorm:"size:50;not null;uniqueIndex:idx_models_name_version" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	Framework   string    `gorm:"size:50" json:"framework"`
	Status      string    `gorm:"size:50;not null;default:'pending'" json:"status"`
	StoragePath string    `gorm:"size:512" json:"storage_path"`
	SizeBytes   int64     `gorm:"default:0" json:"size_bytes"`
	Checksum    string    `gorm:"size:64" json:"checksum"`
	DockerImage string    `gorm:"size:255" json:"docker_image"`

	IsPublic bool      `gorm:"default:false" json:"is_public"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tags are shared across models; deleting a model detaches them but
	// never removes the tag rows themselves.
	Tags     []Tag           `gorm:"many2many:model_tags;" json:"tags,omitempty"`
	Metadata []ModelMetadata `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE" json:"metadata,omitempty"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TagNames returns the names of the model's loaded tags.
func (m *Model) TagNames() []string {
	names := make([]string, 0, len(m.Tags))
	for _, tag := range m.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// MetadataMap flattens the model's loaded metadata rows into a key/value map.
// Null values are substituted with the empty string.
func (m *Model) MetadataMap() map[string]string {
	md := make(map[string]string, len(m.Metadata))
	for _, entry := range m.Metadata {
		if entry.Value == nil {
			md[entry.Key] = ""
			continue
		}
		md[entry.Key] = *entry.Value
	}
	return md
}

// Tag is a short label shared across models.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ModelMetadata is a single key/value annotation owned by one model.
type ModelMetadata struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModelID uuid.UUID `gorm:"type:uuid;not null;index" json:"model_id"`
	Key     string    `gorm:"size:100;not null" json:"key"`
	Value   *string   `gorm:"size:500" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ModelMetadata) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
