package observability

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrhobbeys/HooknSock/internal/relay"
)

// Metrics holds the relay's Prometheus instruments on a private
// registry.
type Metrics struct {
	registry  *prom.Registry
	ingested  *prom.CounterVec
	delivered *prom.CounterVec
	rejected  *prom.CounterVec
}

// New creates the instruments. Queue depths are observed lazily from
// the registry at scrape time rather than tracked on the hot path.
func New(reg *relay.Registry) *Metrics {
	registry := prom.NewRegistry()
	m := &Metrics{
		registry: registry,
		ingested: prom.NewCounterVec(prom.CounterOpts{
			Name: "hooknsock_ingested_total",
			Help: "Payloads accepted by ingress, by channel.",
		}, []string{"channel"}),
		delivered: prom.NewCounterVec(prom.CounterOpts{
			Name: "hooknsock_delivered_total",
			Help: "Items delivered to subscribers, by channel.",
		}, []string{"channel"}),
		rejected: prom.NewCounterVec(prom.CounterOpts{
			Name: "hooknsock_rejected_total",
			Help: "Rejected requests, by reason.",
		}, []string{"reason"}),
	}
	registry.MustRegister(m.ingested, m.delivered, m.rejected)
	registry.MustRegister(prom.NewGaugeFunc(prom.GaugeOpts{
		Name: "hooknsock_channels",
		Help: "Channels referenced since startup.",
	}, func() float64 { return float64(reg.Channels()) }))
	registry.MustRegister(newDepthCollector(reg))
	return m
}

// RecordIngested counts an accepted payload.
func (m *Metrics) RecordIngested(channel string) {
	if m == nil {
		return
	}
	m.ingested.WithLabelValues(channel).Inc()
}

// RecordDelivered counts an item handed to a subscriber.
func (m *Metrics) RecordDelivered(channel string) {
	if m == nil {
		return
	}
	m.delivered.WithLabelValues(channel).Inc()
}

// RecordRejected counts a rejected request.
func (m *Metrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// depthCollector exports per-channel queue depth at scrape time.
type depthCollector struct {
	reg  *relay.Registry
	desc *prom.Desc
}

func newDepthCollector(reg *relay.Registry) *depthCollector {
	return &depthCollector{
		reg: reg,
		desc: prom.NewDesc(
			"hooknsock_queue_depth",
			"Pending items per channel queue.",
			[]string{"channel"}, nil,
		),
	}
}

func (c *depthCollector) Describe(ch chan<- *prom.Desc) { ch <- c.desc }

func (c *depthCollector) Collect(ch chan<- prom.Metric) {
	for name, depth := range c.reg.Depths() {
		ch <- prom.MustNewConstMetric(c.desc, prom.GaugeValue, float64(depth), name)
	}
}
