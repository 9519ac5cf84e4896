// Package domain holds the persisted records of the cable shop (blueprints,
// orders, accounts) and the rules that govern how an order moves through
// production.
package domain

import "errors"

var (
	// ErrInvalidStatus is returned for status strings outside the order lifecycle.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition is returned when a status change skips or reverses a step.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidRole is returned for role strings other than admin, worker or user.
	ErrInvalidRole = errors.New("invalid role")
)
