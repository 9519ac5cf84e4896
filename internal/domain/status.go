package domain

import "fmt"

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusFinished   OrderStatus = "Finished"
)

// orderLifecycle lists, per state, the states it may move to. Finished has no
// outgoing edges.
var orderLifecycle = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusFinished},
	StatusFinished:   nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderLifecycle[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	next, ok := orderLifecycle[s]
	return ok && len(next) == 0
}

// Next returns the single follow-up state, or false for Finished.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next := orderLifecycle[s]
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func CanTransition(from, to OrderStatus) bool {
	for _, candidate := range orderLifecycle[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
