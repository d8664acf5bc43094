package collection

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Poller is a fixed-interval task bound to the lifecycle of its owning
// view. It approximates push updates for screens such as the events list
// (5s) and notifications (30s). Cancelling the context or calling Stop is
// guaranteed to end the timer; a torn-down view can never leak one.
type Poller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartPoller runs task every interval until ctx is cancelled or Stop is
// called. Task errors are logged and do not stop the poller.
func StartPoller(ctx context.Context, interval time.Duration, task func(context.Context) error, logger zerolog.Logger) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := task(ctx); err != nil && ctx.Err() == nil {
					logger.Warn().Err(err).Msg("Poll tick failed")
				}
			}
		}
	}()
	return p
}

// Stop cancels the poller and waits for the timer goroutine to exit.
func (p *Poller) Stop() {
	p.cancel()
	<-p.done
}

// Done reports poller termination, for callers that cancel via context.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
