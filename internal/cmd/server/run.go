package serverrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cfgpkg "github.com/mrhobbeys/HooknSock/internal/config"
	"github.com/mrhobbeys/HooknSock/internal/runtime"
	httpserver "github.com/mrhobbeys/HooknSock/internal/server/http"
	logpkg "github.com/mrhobbeys/HooknSock/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type Options struct {
	HTTPAddr string
	Config   cfgpkg.Config
}

// Run starts the HTTP server and blocks until ctx is cancelled. SIGHUP
// reloads the credential table from the environment without dropping
// connected subscribers.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &logpkg.Config{
		Level:  getenvDefault("HOOKNSOCK_LOG_LEVEL", "info"),
		Format: getenvDefault("HOOKNSOCK_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(cfg)
	if err != nil {
		procLogger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel))
	}

	rt, err := runtime.Open(runtime.Options{Config: opts.Config, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	table := rt.Auth().Current()
	procLogger.Info("starting HooknSock server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("level", cfg.Level),
		logpkg.Str("format", cfg.Format),
		logpkg.Int("credentials", table.Credentials()),
		logpkg.Int("channels", len(table.Channels())),
	)

	hsrv := httpserver.New(rt, procLogger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server error", logpkg.Err(err))
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-hup:
			raw := os.Getenv("HOOKNSOCK_TOKENS")
			if raw == "" {
				raw = opts.Config.Tokens
			}
			if err := rt.ReloadTokens(raw); err != nil {
				procLogger.Error("credential reload failed", logpkg.Err(err))
			}
		case <-sctx.Done():
			hsrv.Close()
			wg.Wait()
			return nil
		}
	}
}
