package relay

import (
	"time"

	"github.com/mrhobbeys/HooknSock/internal/auth"
	"github.com/mrhobbeys/HooknSock/pkg/id"
	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

// Ingress validates producer credentials and routes payloads onto the
// channel each credential is assigned to.
type Ingress struct {
	auth   *auth.Store
	reg    *Registry
	ids    *id.Generator
	logger logpkg.Logger
}

// NewIngress creates an ingress handler over the given auth store and
// registry.
func NewIngress(store *auth.Store, reg *Registry, logger logpkg.Logger) *Ingress {
	return &Ingress{auth: store, reg: reg, ids: id.NewGenerator(), logger: logger}
}

// Ingest authorizes the credential, stamps a delivery ID onto the
// payload, and appends it to the credential's channel queue. It returns
// the channel used for routing. The payload is treated as an opaque
// blob; no transformation occurs. All-or-nothing: on any error the
// queue is untouched.
func (h *Ingress) Ingest(credential string, payload []byte) (string, error) {
	channel, ok := h.auth.Authorize(credential)
	if !ok {
		return "", ErrUnauthorized
	}
	it := Item{ID: h.ids.Next(), Payload: payload, EnqueuedAt: time.Now()}
	if err := h.reg.QueueFor(channel).Push(it); err != nil {
		h.logger.Warn("ingest rejected",
			logpkg.Str("channel", channel),
			logpkg.Err(err),
		)
		return "", err
	}
	h.logger.Debug("payload queued",
		logpkg.Str("channel", channel),
		logpkg.Str("id", it.ID.String()),
		logpkg.Int("bytes", len(payload)),
	)
	return channel, nil
}
