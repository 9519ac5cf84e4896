package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxBlueprintImages caps the reference images attached to one blueprint.
const MaxBlueprintImages = 4

type Dimension struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Blueprint is an admin-authored cable template customers order against.
type Blueprint struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                         `gorm:"not null;column:name;index" json:"name"`
	Description string                         `gorm:"column:description" json:"description"`
	Dimensions  datatypes.JSONSlice[Dimension] `gorm:"column:dimensions;not null" json:"dimensions"`
	Images      datatypes.JSONSlice[string]    `gorm:"column:images;not null" json:"images"`
	CreatedAt   time.Time                      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time                      `gorm:"not null" json:"updated_at"`
}

func (Blueprint) TableName() string { return "blueprint" }

func (b *Blueprint) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Blueprint) BeforeSave(tx *gorm.DB) error {
	if b.Dimensions == nil {
		b.Dimensions = datatypes.JSONSlice[Dimension]{}
	}
	if b.Images == nil {
		b.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Snapshot copies the blueprint's content into a value with no identity and
// no shared backing arrays.
func (b Blueprint) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		Name:        b.Name,
		Description: b.Description,
		Dimensions:  CopyDimensions(b.Dimensions),
		Images:      CopyImages(b.Images),
	}
}

// FilterDimensions drops rows whose label is blank. Order is preserved.
func FilterDimensions(in []Dimension) []Dimension {
	out := make([]Dimension, 0, len(in))
	for _, d := range in {
		if strings.TrimSpace(d.Label) == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

func CopyDimensions(in []Dimension) []Dimension {
	out := make([]Dimension, len(in))
	copy(out, in)
	return out
}

func CopyImages(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
