// Package httpserver exposes the HooknSock HTTP surface: webhook
// ingress, SSE subscriptions (channel-scoped and legacy auto-routed),
// health, and the optional status and metrics endpoints.
package httpserver
