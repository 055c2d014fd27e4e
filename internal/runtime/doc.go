// Package runtime wires configuration, the authorization store, the
// channel registry, and optional observability into a single-node
// HooknSock instance consumed by the transports.
package runtime
