package relay

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mrhobbeys/HooknSock/internal/auth"
	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

// State is a subscriber session's lifecycle state.
type State int

// Session states. Closed is terminal.
const (
	StatePending State = iota
	StateAuthenticated
	StateStreaming
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Sink is implemented by transports to receive streamed items.
type Sink interface {
	Send(Item) error
	Flush() error
}

// Session is one live subscriber connection. It authenticates a
// consumer credential, binds to exactly one channel queue for its
// remaining lifetime, and streams items until the connection goes away.
type Session struct {
	id     string
	auth   *auth.Store
	reg    *Registry
	logger logpkg.Logger

	mu      sync.Mutex
	state   State
	channel string
	queue   *Queue
}

// NewSession creates a session in the Pending state.
func NewSession(store *auth.Store, reg *Registry, logger logpkg.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		auth:   store,
		reg:    reg,
		logger: logger.With(logpkg.Str("session", id)),
	}
}

// ID returns the session's correlation ID.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Channel returns the bound channel name, or "" before authentication.
func (s *Session) Channel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

// Authenticate validates the credential and binds the session to a
// channel queue. With a requestedChannel the credential must be assigned
// to exactly that channel; without one the channel is resolved from the
// credential (legacy auto-routing). Any failure closes the session and
// returns ErrUnauthorized — wrong channel and wrong credential are
// indistinguishable to the caller. Rebinding is not supported.
func (s *Session) Authenticate(credential, requestedChannel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePending {
		return ErrSessionClosed
	}
	var channel string
	if requestedChannel != "" {
		if !s.auth.IsAuthorizedFor(credential, requestedChannel) {
			s.closeLocked()
			return ErrUnauthorized
		}
		channel = requestedChannel
	} else {
		ch, ok := s.auth.Authorize(credential)
		if !ok {
			s.closeLocked()
			return ErrUnauthorized
		}
		channel = ch
	}
	s.channel = channel
	s.queue = s.reg.QueueFor(channel)
	s.state = StateAuthenticated
	s.logger.Debug("session authenticated", logpkg.Str("channel", channel))
	return nil
}

// Stream delivers items from the bound queue to the sink until the
// context is cancelled or a transport write fails. Exactly one item is
// delivered per wake, in strict per-channel FIFO order. An item popped
// before a failed write counts as delivered; it is not requeued. The
// session is closed when Stream returns.
func (s *Session) Stream(ctx context.Context, sink Sink) error {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		st := s.state
		s.mu.Unlock()
		if st == StateClosed {
			return ErrSessionClosed
		}
		return ErrNotAuthenticated
	}
	s.state = StateStreaming
	q := s.queue
	s.mu.Unlock()
	defer s.Close()

	for {
		it, err := q.Pop(ctx)
		if err != nil {
			// cancelled while waiting; nothing was popped
			return err
		}
		if err := sink.Send(it); err != nil {
			s.logger.Debug("transport write failed",
				logpkg.Str("id", it.ID.String()),
				logpkg.Err(err),
			)
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	}
}

// Close transitions the session to Closed. Idempotent; the first call
// wins and later calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	s.logger.Debug("session closed")
}
