package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrhobbeys/HooknSock/internal/auth"
	cfgpkg "github.com/mrhobbeys/HooknSock/internal/config"
	"github.com/mrhobbeys/HooknSock/internal/observability"
	"github.com/mrhobbeys/HooknSock/internal/relay"
	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime wires the auth store, registry, and ingress for a single-node
// instance. Nothing here touches disk; all state dies with the process.
type Runtime struct {
	config  cfgpkg.Config
	logger  logpkg.Logger
	auth    *auth.Store
	reg     *relay.Registry
	ingress *relay.Ingress
	metrics *observability.Metrics
}

// Open parses the credential table and builds the runtime. An empty or
// malformed table is fatal: the process must not start without usable
// credentials.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	table, err := auth.Parse(opts.Config.Tokens)
	if err != nil {
		return nil, fmt.Errorf("load credential table: %w", err)
	}
	store := auth.NewStore(table)
	reg := relay.NewRegistry(opts.Config.QueueCapacity)
	rt := &Runtime{
		config:  opts.Config,
		logger:  logger,
		auth:    store,
		reg:     reg,
		ingress: relay.NewIngress(store, reg, logger.With(logpkg.Component("ingress"))),
	}
	if opts.Config.EnableMetrics {
		rt.metrics = observability.New(reg)
	}
	return rt, nil
}

// Close releases runtime resources. Queues are in-memory only, so there
// is nothing to flush.
func (r *Runtime) Close() error { return nil }

// CheckHealth reports whether the instance can serve.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.auth == nil || r.auth.Current() == nil {
		return errors.New("credential table not loaded")
	}
	return nil
}

// ReloadTokens re-parses the credential table and swaps it atomically.
// The previous table keeps serving readers that already hold it.
func (r *Runtime) ReloadTokens(raw string) error {
	table, err := auth.Parse(raw)
	if err != nil {
		return err
	}
	r.auth.Swap(table)
	r.logger.Info("credential table reloaded",
		logpkg.Int("credentials", table.Credentials()),
		logpkg.Int("channels", len(table.Channels())),
	)
	return nil
}

// NewSession creates a subscriber session in the Pending state.
func (r *Runtime) NewSession() *relay.Session {
	return relay.NewSession(r.auth, r.reg, r.logger.With(logpkg.Component("session")))
}

// Auth returns the authorization store.
func (r *Runtime) Auth() *auth.Store { return r.auth }

// Registry returns the channel registry.
func (r *Runtime) Registry() *relay.Registry { return r.reg }

// Ingress returns the webhook ingress handler.
func (r *Runtime) Ingress() *relay.Ingress { return r.ingress }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Metrics returns the Prometheus instruments, or nil when metrics are
// disabled.
func (r *Runtime) Metrics() *observability.Metrics { return r.metrics }

// StatusInfo summarizes the instance for the status surface.
type StatusInfo struct {
	Channels    int            `json:"channels"`
	Credentials int            `json:"credentials"`
	QueueDepths map[string]int `json:"queueDepths"`
}

// Status returns the summary when the status surface is enabled and nil
// when it is disabled, so the transport can treat the operation as not
// present rather than present-but-empty.
func (r *Runtime) Status() *StatusInfo {
	if !r.config.EnableStatus {
		return nil
	}
	return &StatusInfo{
		Channels:    r.reg.Channels(),
		Credentials: r.auth.Current().Credentials(),
		QueueDepths: r.reg.Depths(),
	}
}
