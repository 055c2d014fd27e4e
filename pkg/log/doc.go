// Package log provides structured logging for HooknSock components.
//
// Loggers are constructed explicitly and passed by dependency injection;
// there is no package-level default. Output format and level are usually
// driven by environment configuration:
//
//	logger, _ := log.ApplyConfig(&log.Config{Level: "info", Format: "text"})
//	logger.Info("server started", log.Str("addr", ":8080"))
//
// Components tag their logs once and reuse the derived logger:
//
//	hl := logger.With(log.Component("relay"))
//	hl.Warn("queue full", log.Str("channel", ch), log.Int("depth", n))
package log
