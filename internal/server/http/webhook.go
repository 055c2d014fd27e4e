package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mrhobbeys/HooknSock/internal/relay"
	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

// handleWebhook is the producer entry point. The credential travels in
// the X-Auth-Token header; the body must be well-formed JSON and within
// the configured size cap. The payload is relayed verbatim.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := int64(s.rt.Config().PayloadMaxBytes)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.rt.Metrics().RecordRejected("oversize")
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "body read failed")
		return
	}
	if !json.Valid(body) {
		s.rt.Metrics().RecordRejected("malformed")
		writeError(w, http.StatusBadRequest, "payload must be valid JSON")
		return
	}
	token := r.Header.Get("X-Auth-Token")
	channel, err := s.rt.Ingress().Ingest(token, body)
	if err != nil {
		switch {
		case errors.Is(err, relay.ErrUnauthorized):
			s.rt.Metrics().RecordRejected("unauthorized")
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, relay.ErrQueueFull):
			s.rt.Metrics().RecordRejected("queue_full")
			writeError(w, http.StatusServiceUnavailable, "queue full")
		default:
			s.logger.Error("ingest failed", logpkg.Err(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	s.rt.Metrics().RecordIngested(channel)
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "queued", "channel": channel})
}
