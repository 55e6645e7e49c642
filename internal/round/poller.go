package round

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultPollInterval is how often the poller refreshes the snapshot
// while a hand is in play
const DefaultPollInterval = 2 * time.Second

// Poller periodically refreshes the remote snapshot while a round is in
// the playing phase, so dealer progress and the finished transition are
// observed without user input. The clock is injected so tests drive it
// with a mock.
type Poller struct {
	orch     *Orchestrator
	clock    quartz.Clock
	interval time.Duration
	onUpdate func(State)
	logger   *log.Logger
}

// NewPoller creates a poller for the orchestrator. onUpdate, if non-nil,
// is invoked with the current state after every refresh attempt.
func NewPoller(orch *Orchestrator, clock quartz.Clock, interval time.Duration, onUpdate func(State), logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		orch:     orch,
		clock:    clock,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger.WithPrefix("poller"),
	}
}

// Run polls until the context is cancelled. Refresh failures are logged
// and do not stop the poller; the round's own failure policy decides what
// the user sees.
func (p *Poller) Run(ctx context.Context) error {
	waiter := p.clock.TickerFunc(ctx, p.interval, func() error {
		p.tick(ctx)
		return nil
	}, "round-poller")

	if err := waiter.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (p *Poller) tick(ctx context.Context) {
	if p.orch.State().Phase != Playing {
		return
	}

	if err := p.orch.Refresh(ctx); err != nil {
		p.logger.Warn("Snapshot refresh failed", "error", err)
	}

	if p.onUpdate != nil {
		p.onUpdate(p.orch.State())
	}
}
