package server

import "errors"

// Sentinel errors for common session error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a
	// closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrEventQueueFull is reported when the event queue is full and an
	// event frame is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrNoFactory is returned when a Server is created without an app
	// factory.
	ErrNoFactory = errors.New("server: no app factory configured")
)
