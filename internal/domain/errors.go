package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrUnknownCategory indicates an unsupported product category.
	ErrUnknownCategory = errors.New("unknown product category")
	// ErrCatalogNotFound indicates the product catalog could not be loaded.
	ErrCatalogNotFound = errors.New("product catalog not found")
	// ErrDispatcherTerminated is returned for requests pending when the
	// worker dispatcher was explicitly terminated.
	ErrDispatcherTerminated = errors.New("dispatcher terminated")
)
