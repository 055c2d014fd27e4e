package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

// handleSubscribe serves both subscription flavors over SSE:
// /v1/subscribe streams whatever channel the credential is assigned to
// (legacy auto-routing); /v1/subscribe/{channel} requires the credential
// to be assigned to exactly that channel. A bad token and a wrong
// channel produce the same 401.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	channel := ""
	if rest, ok := strings.CutPrefix(r.URL.Path, "/v1/subscribe/"); ok {
		channel = strings.TrimSuffix(rest, "/")
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("X-Auth-Token")
	}

	sess := s.rt.NewSession()
	if err := sess.Authenticate(token, channel); err != nil {
		s.rt.Metrics().RecordRejected("unauthorized")
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		sess.Close()
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.logger.Debug("subscriber streaming",
		logpkg.Str("session", sess.ID()),
		logpkg.Str("channel", sess.Channel()),
	)
	sink := &sseSink{
		w:       w,
		flusher: flusher,
		metrics: s.rt.Metrics(),
		channel: sess.Channel(),
	}
	err := sess.Stream(r.Context(), sink)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("subscriber stream ended",
			logpkg.Str("session", sess.ID()),
			logpkg.Err(err),
		)
	}
}
