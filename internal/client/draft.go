package client

import (
	"fmt"
	"strings"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

// BlueprintDraft is the editable form of a blueprint before it is saved.
type BlueprintDraft struct {
	Name        string
	Description string
	dimensions  []domain.Dimension
	images      []string
}

func NewBlueprintDraft(name, description string) *BlueprintDraft {
	return &BlueprintDraft{Name: name, Description: description}
}

// AddImage appends an encoded image. The fifth one is rejected and the draft
// keeps the four it has.
func (d *BlueprintDraft) AddImage(data string) error {
	if strings.TrimSpace(data) == "" {
		return fmt.Errorf("%w: empty image", ErrValidation)
	}
	if len(d.images) >= domain.MaxBlueprintImages {
		return fmt.Errorf("%w: at most %d images", ErrImageCapacity, domain.MaxBlueprintImages)
	}
	d.images = append(d.images, data)
	return nil
}

func (d *BlueprintDraft) RemoveImage(i int) error {
	if i < 0 || i >= len(d.images) {
		return fmt.Errorf("%w: no image at %d", ErrValidation, i)
	}
	d.images = append(d.images[:i], d.images[i+1:]...)
	return nil
}

func (d *BlueprintDraft) Images() []string { return domain.CopyImages(d.images) }

// AddDimension appends a row. Rows with a blank label are kept in the draft
// and dropped from the payload.
func (d *BlueprintDraft) AddDimension(label, value string) {
	d.dimensions = append(d.dimensions, domain.Dimension{Label: label, Value: value})
}

func (d *BlueprintDraft) SetDimension(i int, label, value string) error {
	if i < 0 || i >= len(d.dimensions) {
		return fmt.Errorf("%w: no dimension at %d", ErrValidation, i)
	}
	d.dimensions[i] = domain.Dimension{Label: label, Value: value}
	return nil
}

func (d *BlueprintDraft) RemoveDimension(i int) error {
	if i < 0 || i >= len(d.dimensions) {
		return fmt.Errorf("%w: no dimension at %d", ErrValidation, i)
	}
	d.dimensions = append(d.dimensions[:i], d.dimensions[i+1:]...)
	return nil
}

func (d *BlueprintDraft) Dimensions() []domain.Dimension { return domain.CopyDimensions(d.dimensions) }

func (d *BlueprintDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(d.images) > domain.MaxBlueprintImages {
		return fmt.Errorf("%w: at most %d images", ErrImageCapacity, domain.MaxBlueprintImages)
	}
	return nil
}

// Payload is the body sent on save: trimmed name and labelled rows only.
func (d *BlueprintDraft) Payload() domain.OrderSnapshot {
	return domain.OrderSnapshot{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Dimensions:  domain.FilterDimensions(d.dimensions),
		Images:      domain.CopyImages(d.images),
	}
}
