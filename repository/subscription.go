package repository

import (
	"context"
	"sync/atomic"
)

// subscription tracks teardown state for one live change-stream watch.
// Deliveries run on a single goroutine per subscription; active is
// re-checked immediately before each callback, so a stream event (or a
// late-resolving fetch) that races with Stop is discarded instead of
// being delivered after Stop returned.
type subscription struct {
	cancel context.CancelFunc
	closed atomic.Bool
}

func newSubscription(cancel context.CancelFunc) *subscription {
	return &subscription{cancel: cancel}
}

func (s *subscription) active() bool {
	return !s.closed.Load()
}

// Stop tears the watch down. Idempotent, and safe to call from inside
// the delivery callback itself.
func (s *subscription) Stop() {
	if s.closed.CompareAndSwap(false, true) {
		s.cancel()
	}
}
