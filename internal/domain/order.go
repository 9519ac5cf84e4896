package domain

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinOrderReference = 1000
	MaxOrderReference = 9999
)

// OrderSnapshot is the frozen blueprint content an order is built from.
type OrderSnapshot struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Dimensions  []Dimension `json:"dimensions"`
	Images      []string    `json:"images"`
}

// Order is an independent copy of a blueprint plus its production status.
// Reference is display-only and may collide.
type Order struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Reference   int                            `gorm:"column:reference;not null;index" json:"reference"`
	Name        string                         `gorm:"column:name;not null" json:"name"`
	Description string                         `gorm:"column:description" json:"description"`
	Dimensions  datatypes.JSONSlice[Dimension] `gorm:"column:dimensions;not null" json:"dimensions"`
	Images      datatypes.JSONSlice[string]    `gorm:"column:images;not null" json:"images"`
	Status      OrderStatus                    `gorm:"column:status;not null;index" json:"status"`
	StartTime   *time.Time                     `gorm:"column:start_time" json:"start_time"`
	EndTime     *time.Time                     `gorm:"column:end_time" json:"end_time"`
	Version     int64                          `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt   time.Time                      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time                      `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "cable_order" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.Dimensions == nil {
		o.Dimensions = datatypes.JSONSlice[Dimension]{}
	}
	if o.Images == nil {
		o.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}

// NewOrder builds a Pending order from a snapshot. The slices are copied so
// later edits to the source never reach the order.
func NewOrder(snap OrderSnapshot, reference int) *Order {
	return &Order{
		Reference:   reference,
		Name:        snap.Name,
		Description: snap.Description,
		Dimensions:  CopyDimensions(snap.Dimensions),
		Images:      CopyImages(snap.Images),
		Status:      StatusPending,
		Version:     1,
	}
}

// RandomReference returns a 4-digit display number. Uniqueness is not checked.
func RandomReference() int {
	return MinOrderReference + rand.IntN(MaxOrderReference-MinOrderReference+1)
}

func ValidReference(ref int) bool {
	return ref >= MinOrderReference && ref <= MaxOrderReference
}

// Transition moves the order to the requested status and stamps the matching
// timestamp with now. Only Pending -> In Progress -> Finished is allowed.
func (o *Order) Transition(to OrderStatus, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	at := now
	switch to {
	case StatusInProgress:
		o.StartTime = &at
	case StatusFinished:
		o.EndTime = &at
	}
	o.Status = to
	return nil
}

// Elapsed is the production time: zero while Pending, now-start while In
// Progress (never negative), and end-start once Finished.
func (o Order) Elapsed(now time.Time) time.Duration {
	if o.StartTime == nil {
		return 0
	}
	switch o.Status {
	case StatusInProgress:
		d := now.Sub(*o.StartTime)
		if d < 0 {
			return 0
		}
		return d
	case StatusFinished:
		if o.EndTime == nil {
			return 0
		}
		return o.EndTime.Sub(*o.StartTime)
	default:
		return 0
	}
}

// FormatElapsed renders a duration as MM:SS. Minutes keep growing past 59.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
