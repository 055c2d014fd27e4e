// Package relay implements the channel relay engine: per-channel FIFO
// delivery queues, the registry that owns them, webhook ingress, and the
// subscriber session state machine.
//
// Payloads are opaque to this package; they are validated at the
// transport boundary and never interpreted here. Each queue is a
// competing-consumer FIFO: an item is popped by exactly one session and
// is gone regardless of what happens to it afterwards.
//
// Example:
//
//	reg := relay.NewRegistry(0)
//	ing := relay.NewIngress(store, reg, logger)
//	ch, _ := ing.Ingest("abc", []byte(`{"a":1}`))
//
//	sess := relay.NewSession(store, reg, logger)
//	if err := sess.Authenticate("abc", ""); err == nil {
//	    _ = sess.Stream(ctx, mySink)
//	}
package relay
