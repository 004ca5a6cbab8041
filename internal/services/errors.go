// internal/services/errors.go
package services

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrCartEmpty      = errors.New("cart is empty")
	ErrInvalidSession = errors.New("invalid session")
	ErrUpstream       = errors.New("authentication service error")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyExists  = errors.New("already exists")
)
