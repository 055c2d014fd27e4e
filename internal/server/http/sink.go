package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/mrhobbeys/HooknSock/internal/observability"
	"github.com/mrhobbeys/HooknSock/internal/relay"
)

// sseSink implements relay.Sink for Server-Sent Events. Each item is
// sent as one "data:" event carrying the delivery ID and the payload
// verbatim.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	metrics *observability.Metrics
	channel string
}

func (s *sseSink) Send(it relay.Item) error {
	b, err := json.Marshal(map[string]any{
		"id":      it.ID.String(),
		"payload": json.RawMessage(it.Payload),
	})
	if err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	s.metrics.RecordDelivered(s.channel)
	return nil
}

func (s *sseSink) Flush() error {
	s.flusher.Flush()
	return nil
}
