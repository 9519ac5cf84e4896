package realtime

import (
	"time"

	"github.com/google/uuid"
)

type SSEEvent string

const (
	SSEEventDataChanged SSEEvent = "DataChanged"
)

// ChangesChannel is the hub channel every change event is broadcast on.
const ChangesChannel = "changes"

type Collection string

const (
	CollectionBlueprints Collection = "blueprints"
	CollectionOrders     Collection = "orders"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Change says which record of which collection was mutated. Origin is the
// client instance that caused it, so that client can skip its own echo.
type Change struct {
	Collection Collection `json:"collection"`
	Operation  Operation  `json:"operation"`
	ID         uuid.UUID  `json:"id"`
	Origin     string     `json:"origin,omitempty"`
	At         time.Time  `json:"at"`
}

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}
