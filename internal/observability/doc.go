// Package observability provides optional Prometheus instrumentation.
// When metrics are disabled the collector is nil; all record methods on
// a nil collector are no-ops and the /metrics route is never registered,
// so the whole surface behaves as absent.
package observability
