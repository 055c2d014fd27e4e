package relay

import "errors"

var (
	// ErrUnauthorized is returned when a credential is unknown or is
	// not assigned to the requested channel. Callers must not be able
	// to tell the two cases apart.
	ErrUnauthorized = errors.New("relay: unauthorized")

	// ErrQueueFull is returned by ingest when a bounded delivery queue
	// is at capacity.
	ErrQueueFull = errors.New("relay: delivery queue full")

	// ErrNotAuthenticated is returned when streaming is attempted on a
	// session that has not authenticated.
	ErrNotAuthenticated = errors.New("relay: session not authenticated")

	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("relay: session closed")
)
