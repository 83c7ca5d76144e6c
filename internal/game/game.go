package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/achievement"
	"github.com/zappabad/trademaster/internal/insight"
	insightview "github.com/zappabad/trademaster/internal/insight/view"
	"github.com/zappabad/trademaster/internal/market"
	marketview "github.com/zappabad/trademaster/internal/market/view"
	"github.com/zappabad/trademaster/internal/portfolio"
)

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrClosed            = errors.New("game closed")
)

// TradeReport is the outcome of a Trade call.
type TradeReport struct {
	Accepted    bool
	Reason      error // why the trade was rejected, nil when accepted
	Transaction portfolio.Transaction
	TotalValue  decimal.Decimal
	Unlocked    []string
}

// Game owns one trading session. A single goroutine holds all mutable
// state; ticks and commands are applied by it in arrival order.
type Game struct {
	cfg    Config
	rng    market.Rand
	now    func() time.Time
	manual bool

	// owned by the run loop
	instruments []market.Instrument
	trend       market.Trend
	selected    market.Symbol
	state       portfolio.State
	notice      *achievement.Notification
	tickCount   int64
	history     *marketview.PriceHistory
	insights    *insightview.Feed
	generator   *insight.Generator
	evaluator   *achievement.Evaluator

	snap atomic.Pointer[Snapshot]

	cmdCh         chan any
	events        chan Event
	droppedEvents atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Game and starts its loop. Call Close to stop it.
func New(cfg Config, opts ...Option) *Game {
	cfg = cfg.withDefaults()

	g := &Game{
		cfg:         cfg,
		now:         time.Now,
		instruments: append([]market.Instrument(nil), cfg.Instruments...),
		trend:       cfg.InitialTrend,
		selected:    cfg.Instruments[0].Symbol,
		state:       portfolio.NewState(cfg.StartingCash),
		history:     marketview.NewPriceHistory(cfg.HistorySize),
		insights:    insightview.NewFeed(cfg.InsightFeedSize),
		generator:   insight.NewGeneratorWith(insight.Catalog, cfg.InsightProbability),
		evaluator:   achievement.NewEvaluator(),
		cmdCh:       make(chan any, cfg.CommandBuffer),
		events:      make(chan Event, cfg.EventBuffer),
		closed:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = defaultRand(cfg.Seed)
	}

	g.publish(g.now())

	g.wg.Add(1)
	go g.run()

	glog.Infof("game: session started with %d instruments, cash %s, tick %s, manual=%v",
		len(g.instruments), cfg.StartingCash.StringFixed(2), cfg.TickInterval, g.manual)
	return g
}

type tradeCmd struct {
	dir    portfolio.Direction
	symbol market.Symbol
	shares int64
	reply  chan tradeResp
}

type tradeResp struct {
	report TradeReport
	err    error
}

type selectCmd struct {
	symbol market.Symbol
	reply  chan error
}

type advanceCmd struct {
	reply chan struct{}
}

func (g *Game) run() {
	defer g.wg.Done()
	defer close(g.events)

	var tick <-chan time.Time
	if !g.manual {
		ticker := time.NewTicker(g.cfg.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-g.closed:
			return
		case <-tick:
			g.step()
		case cmd := <-g.cmdCh:
			g.handle(cmd)
		}
	}
}

func (g *Game) handle(cmd any) {
	switch c := cmd.(type) {
	case tradeCmd:
		report, err := g.trade(c.dir, c.symbol, c.shares)
		c.reply <- tradeResp{report: report, err: err}
	case selectCmd:
		c.reply <- g.selectInstrument(c.symbol)
	case advanceCmd:
		g.step()
		c.reply <- struct{}{}
	}
}

// step runs one simulation tick.
func (g *Game) step() {
	now := g.now()

	g.instruments = market.Tick(g.instruments, g.trend, g.rng)
	g.history.RecordAll(g.instruments, now)
	g.tickCount++

	if item, ok := g.generator.Next(g.rng, now); ok {
		g.insights.Add(item)
		g.emit(InsightEvent{Text: item.Text, Time: now})
	}

	if next := market.FlipTrend(g.trend, g.rng); next != g.trend {
		g.trend = next
		glog.V(1).Infof("game: trend turned %s at tick %d", next, g.tickCount)
		g.emit(TrendEvent{Trend: next, Time: now})
	}

	g.unlock(now)
	snap := g.publish(now)
	g.emit(TickEvent{Tick: g.tickCount, Time: now, TotalValue: snap.TotalValue})
}

func (g *Game) trade(dir portfolio.Direction, symbol market.Symbol, shares int64) (TradeReport, error) {
	in, ok := market.Find(g.instruments, symbol)
	if !ok {
		return TradeReport{}, fmt.Errorf("trade %s: %w", symbol, ErrUnknownInstrument)
	}

	now := g.now()
	if reason := portfolio.Check(g.state, dir, symbol, shares, in.Price); reason != nil {
		glog.V(1).Infof("game: rejected %s %d %s @ %s: %v", dir, shares, symbol, in.Price.StringFixed(2), reason)
		return TradeReport{Reason: reason, TotalValue: g.totalValue()}, nil
	}

	next, accepted := portfolio.ExecuteTrade(g.state, dir, symbol, shares, in.Price, now)
	if !accepted {
		return TradeReport{Reason: portfolio.ErrInvalidTrade, TotalValue: g.totalValue()}, nil
	}
	g.state = next

	unlocked := g.unlock(now)
	snap := g.publish(now)

	tx := next.Transactions[0]
	glog.V(1).Infof("game: %s %d %s @ %s, cash %s", dir, shares, symbol, in.Price.StringFixed(2), next.Cash.StringFixed(2))
	g.emit(TradeEvent{Transaction: tx, TotalValue: snap.TotalValue})

	return TradeReport{
		Accepted:    true,
		Transaction: tx,
		TotalValue:  snap.TotalValue,
		Unlocked:    unlocked,
	}, nil
}

func (g *Game) selectInstrument(symbol market.Symbol) error {
	if _, ok := market.Find(g.instruments, symbol); !ok {
		return fmt.Errorf("select %s: %w", symbol, ErrUnknownInstrument)
	}
	g.selected = symbol
	g.publish(g.now())
	return nil
}

// unlock evaluates achievements against the current state and records new ones.
func (g *Game) unlock(now time.Time) []string {
	names := g.evaluator.Evaluate(g.state.Achievements, achievement.Progress{
		TotalValue: g.totalValue(),
		TradeCount: g.state.TradeCount,
	})
	if len(names) == 0 {
		return nil
	}

	g.state = g.state.WithAchievements(names...)
	g.notice = achievement.NewNotification(names[0], now)
	for _, name := range names {
		glog.Infof("game: achievement unlocked: %s", name)
		g.emit(AchievementEvent{Name: name, Time: now})
	}
	return names
}

func (g *Game) totalValue() decimal.Decimal {
	return portfolio.Valuate(g.state, market.Prices(g.instruments))
}

// publish stores a fresh snapshot for readers.
func (g *Game) publish(now time.Time) *Snapshot {
	total := g.totalValue()
	pl, plPct := portfolio.ProfitLoss(total, g.cfg.StartingCash)

	if !g.notice.Active(now) {
		g.notice = nil
	}

	snap := &Snapshot{
		Tick:              g.tickCount,
		Time:              now,
		Trend:             g.trend,
		Instruments:       append([]market.Instrument(nil), g.instruments...),
		Selected:          g.selected,
		History:           g.history.Snapshot(),
		Insights:          g.insights.Latest(),
		Portfolio:         g.state,
		StartingCash:      g.cfg.StartingCash,
		TotalValue:        total,
		ProfitLoss:        pl,
		ProfitLossPercent: plPct,
		Notification:      g.notice,
	}
	g.snap.Store(snap)
	return snap
}

func (g *Game) emit(ev Event) {
	if g.cfg.DropEvents {
		select {
		case g.events <- ev:
		default:
			if g.droppedEvents.Add(1)%100 == 1 {
				glog.V(2).Infof("game: events channel full, %d dropped", g.droppedEvents.Load())
			}
		}
	} else {
		select {
		case g.events <- ev:
		case <-g.closed:
		}
	}
}

// Snapshot returns the latest published state. An achievement
// notification is only included until it expires.
func (g *Game) Snapshot() Snapshot {
	snap := *g.snap.Load()
	if !snap.Notification.Active(g.now()) {
		snap.Notification = nil
	}
	return snap
}

// Trade buys or sells shares of symbol at its current price.
// A trade the portfolio cannot cover is reported with Accepted false and a
// nil error; errors are reserved for unknown symbols and a closed game.
func (g *Game) Trade(ctx context.Context, dir portfolio.Direction, symbol market.Symbol, shares int64) (TradeReport, error) {
	reply := make(chan tradeResp, 1)
	if err := g.sendCmd(ctx, tradeCmd{dir: dir, symbol: symbol, shares: shares, reply: reply}); err != nil {
		return TradeReport{}, err
	}

	select {
	case r := <-reply:
		return r.report, r.err
	case <-ctx.Done():
		return TradeReport{}, ctx.Err()
	case <-g.closed:
		return TradeReport{}, ErrClosed
	}
}

// SelectInstrument changes the instrument trades and charts refer to.
func (g *Game) SelectInstrument(ctx context.Context, symbol market.Symbol) error {
	reply := make(chan error, 1)
	if err := g.sendCmd(ctx, selectCmd{symbol: symbol, reply: reply}); err != nil {
		return err
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-g.closed:
		return ErrClosed
	}
}

// Advance runs one simulation tick and waits for it to be applied.
func (g *Game) Advance(ctx context.Context) error {
	reply := make(chan struct{}, 1)
	if err := g.sendCmd(ctx, advanceCmd{reply: reply}); err != nil {
		return err
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-g.closed:
		return ErrClosed
	}
}

func (g *Game) sendCmd(ctx context.Context, cmd any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.closed:
		return ErrClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.closed:
		return ErrClosed
	case g.cmdCh <- cmd:
		return nil
	}
}

// Events returns the game events channel. It is closed after Close.
func (g *Game) Events() <-chan Event {
	return g.events
}

// DroppedEvents returns the count of dropped events.
func (g *Game) DroppedEvents() int64 {
	return g.droppedEvents.Load()
}

// Config returns the effective configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// Close stops the ticker and waits for the loop to exit. No state changes
// after Close returns. Safe to call more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		close(g.closed)
		g.wg.Wait()
		glog.Infof("game: session closed after %d ticks", g.tickCount)
	})
}
