package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/internal/trader"
	"github.com/zappabad/trademaster/internal/trader/strategy"
)

// Session is the part of a game session the runner drives.
type Session interface {
	Snapshot() game.Snapshot
	Trade(ctx context.Context, dir portfolio.Direction, symbol market.Symbol, shares int64) (game.TradeReport, error)
}

// Runner feeds session snapshots to a strategy and executes its intents.
// Step drives it synchronously; Start runs it on a timer until Close.
type Runner struct {
	cfg      Config
	strategy strategy.Strategy
	session  Session
	now      func() time.Time

	events        chan trader.Event
	droppedEvents atomic.Int64

	startOnce sync.Once
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewRunner creates a new Runner.
func NewRunner(cfg Config, strat strategy.Strategy, session Session) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}

	return &Runner{
		cfg:      cfg,
		strategy: strat,
		session:  session,
		now:      time.Now,
		events:   make(chan trader.Event, cfg.EventBuffer),
		closed:   make(chan struct{}),
	}
}

// Start runs Step every TickInterval in the background.
func (r *Runner) Start() {
	r.startOnce.Do(func() {
		r.wg.Add(1)
		go r.run()
	})
}

func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.cfg.TickInterval)
			err := r.Step(ctx)
			cancel()
			if errors.Is(err, game.ErrClosed) {
				return
			}
		}
	}
}

// Step asks the strategy for intents against the current snapshot and
// executes them in order. Rejected trades are reported as events; an error
// from the session stops the step and is returned.
func (r *Runner) Step(ctx context.Context) error {
	intents := r.strategy.Step(ctx, r.session.Snapshot())

	for _, intent := range intents {
		rep, err := r.session.Trade(ctx, intent.Direction, intent.Symbol, intent.Shares)
		if err != nil {
			r.emitEvent(trader.Event{Time: r.now(), Type: trader.EventError, Intent: intent, Message: err.Error()})
			return err
		}
		if !rep.Accepted {
			msg := "rejected"
			if rep.Reason != nil {
				msg = rep.Reason.Error()
			}
			glog.V(1).Infof("runner: %s rejected: %s", intent, msg)
			r.emitEvent(trader.Event{Time: r.now(), Type: trader.EventRejected, Intent: intent, Message: msg})
			continue
		}
		glog.V(1).Infof("runner: %s at %s", intent, rep.Transaction.Price.StringFixed(2))
		r.emitEvent(trader.Event{Time: r.now(), Type: trader.EventTraded, Intent: intent})
	}
	return nil
}

func (r *Runner) emitEvent(ev trader.Event) {
	if r.cfg.DropEvents {
		select {
		case r.events <- ev:
		default:
			r.droppedEvents.Add(1)
		}
	} else {
		select {
		case r.events <- ev:
		case <-r.closed:
		}
	}
}

// Events returns the trader events channel. It is never closed.
func (r *Runner) Events() <-chan trader.Event {
	return r.events
}

// DroppedEvents returns the count of dropped events.
func (r *Runner) DroppedEvents() int64 {
	return r.droppedEvents.Load()
}

// Close stops a started runner and waits for it to exit.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
	})
	r.wg.Wait()
}
