// Package serverrun starts a HooknSock instance: it layers signal
// handling, builds the process logger, opens the runtime, serves HTTP,
// and reloads the credential table on SIGHUP.
package serverrun
