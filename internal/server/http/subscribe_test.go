package httpserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func postWebhook(t *testing.T, base, token, payload string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, base+"/v1/webhook", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("X-Auth-Token", token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// readEvent reads one SSE "data:" line and decodes its envelope.
func readEvent(t *testing.T, r *bufio.Reader) (id string, payload json.RawMessage) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read event: %v", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			t.Fatalf("unexpected line: %q", line)
		}
		var ev struct {
			ID      string          `json:"id"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			t.Fatalf("decode event %q: %v", data, err)
		}
		return ev.ID, ev.Payload
	}
}

func TestSubscribeStreamsQueuedPayloads(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	payloads := []string{`{"msg":"event-0"}`, `{"msg":"event-1"}`, `{"msg":"event-2"}`}
	for _, p := range payloads {
		if resp := postWebhook(t, ts.URL, "abc", p); resp.StatusCode != http.StatusAccepted {
			t.Fatalf("webhook status: %d", resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/v1/subscribe?token=abc")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("subscribe status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type: %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	lastID := ""
	for i, want := range payloads {
		id, payload := readEvent(t, r)
		if string(payload) != want {
			t.Fatalf("event %d: got %s, want %s", i, payload, want)
		}
		if id <= lastID {
			t.Fatalf("event %d: id %q not increasing after %q", i, id, lastID)
		}
		lastID = id
	}

	// everything was consumed
	if depth := s.rt.Registry().QueueFor("service1").Len(); depth != 0 {
		t.Fatalf("queue depth after delivery: %d", depth)
	}
}

func TestSubscribeChannelScoped(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	postWebhook(t, ts.URL, "xyz", `{"k":"v"}`)

	resp, err := http.Get(ts.URL + "/v1/subscribe/service2?token=xyz")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("subscribe status: %d", resp.StatusCode)
	}
	_, payload := readEvent(t, bufio.NewReader(resp.Body))
	if string(payload) != `{"k":"v"}` {
		t.Fatalf("payload: %s", payload)
	}
}

func TestSubscribeWrongChannelRejected(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	// valid credential for service1, but asking for another channel
	resp, err := http.Get(ts.URL + "/v1/subscribe/otherchan?token=abc")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: %d, want 401", resp.StatusCode)
	}
}

func TestSubscribeUnknownTokenRejected(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	for _, path := range []string{"/v1/subscribe?token=invalid-token", "/v1/subscribe/service1?token=invalid-token"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: status %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestSubscribeDeliversLivePush(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/subscribe?token=abc")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("subscribe status: %d", resp.StatusCode)
	}

	// push after the subscriber is already waiting
	go func() {
		time.Sleep(50 * time.Millisecond)
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/webhook", strings.NewReader(`{"live":true}`))
		req.Header.Set("X-Auth-Token", "abc")
		r, err := http.DefaultClient.Do(req)
		if err == nil {
			r.Body.Close()
		}
	}()

	type result struct {
		payload string
	}
	got := make(chan result, 1)
	go func() {
		_, payload := readEvent(t, bufio.NewReader(resp.Body))
		got <- result{payload: string(payload)}
	}()
	select {
	case r := <-got:
		if r.payload != `{"live":true}` {
			t.Fatalf("payload: %s", r.payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for live event")
	}
}

func TestSubscribeHeaderTokenFallback(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	postWebhook(t, ts.URL, "legacy", `{"via":"header"}`)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/subscribe", nil)
	req.Header.Set("X-Auth-Token", "legacy")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	_, payload := readEvent(t, bufio.NewReader(resp.Body))
	if string(payload) != `{"via":"header"}` {
		t.Fatalf("payload: %s", payload)
	}
}

func TestCompetingSubscribersSplitItems(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	// close after the t.Cleanup-registered response bodies; a deferred
	// Close would run first and block on the still-open SSE connections
	t.Cleanup(ts.Close)

	open := func() *bufio.Reader {
		resp, err := http.Get(ts.URL + "/v1/subscribe?token=abc")
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		t.Cleanup(func() { _ = resp.Body.Close() })
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("subscribe status: %d", resp.StatusCode)
		}
		return bufio.NewReader(resp.Body)
	}
	r1 := open()
	r2 := open()

	postWebhook(t, ts.URL, "abc", `{"n":1}`)
	postWebhook(t, ts.URL, "abc", `{"n":2}`)

	// which session gets which item is unspecified; drain events from
	// both connections and assert the union matches what was pushed
	events := make(chan string, 2)
	for _, r := range []*bufio.Reader{r1, r2} {
		go func(r *bufio.Reader) {
			for {
				line, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
					var ev struct {
						Payload json.RawMessage `json:"payload"`
					}
					if json.Unmarshal([]byte(data), &ev) == nil {
						events <- string(ev.Payload)
					}
				}
			}
		}(r)
	}
	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case p := <-events:
			got[p] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for event %d, got %v", i, got)
		}
	}
	for _, want := range []string{`{"n":1}`, `{"n":2}`} {
		if !got[want] {
			t.Fatalf("missing %s in %v", want, got)
		}
	}
	if depth := s.rt.Registry().QueueFor("service1").Len(); depth != 0 {
		t.Fatalf("queue depth: %d", depth)
	}
}

func TestWebhookToSubscriberScenario(t *testing.T) {
	// config "abc:service1,xyz:service2": ingest with abc routes to
	// service1 and an auto-routed session on abc streams it back
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := postWebhook(t, ts.URL, "abc", `{"a":1}`)
	var ack map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack["channel"] != "service1" {
		t.Fatalf("ack channel: %q", ack["channel"])
	}

	sub, err := http.Get(fmt.Sprintf("%s/v1/subscribe?token=%s", ts.URL, "abc"))
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Body.Close()
	_, payload := readEvent(t, bufio.NewReader(sub.Body))
	if string(payload) != `{"a":1}` {
		t.Fatalf("payload: %s", payload)
	}
}
