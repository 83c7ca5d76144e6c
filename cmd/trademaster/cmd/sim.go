package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/report"
	"github.com/zappabad/trademaster/internal/trader/runner"
	"github.com/zappabad/trademaster/internal/trader/strategy"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session and print a report",
	Long: `Run a session without the terminal UI. The market advances --ticks
times as fast as possible; an optional strategy trades after every tick.
The final state is printed as a markdown report.

Examples:
  trademaster sim --ticks 300 --seed 42 --strategy momentum
  trademaster sim --ticks 60 --raw > session.md`,
	RunE: runSim,
}

var (
	simTicks    int
	simSeed     int64
	simStrategy string
	simRaw      bool
	simStyle    string
	simWidth    int
)

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().IntVarP(&simTicks, "ticks", "n", 60, "number of market ticks to simulate")
	simCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 uses the config seed or the clock)")
	simCmd.Flags().StringVarP(&simStrategy, "strategy", "s", "", fmt.Sprintf("strategy that trades each tick %v", strategy.Names()))
	simCmd.Flags().BoolVar(&simRaw, "raw", false, "print the markdown without rendering it")
	simCmd.Flags().StringVar(&simStyle, "style", "", "glamour style (dark, light, notty, ...); detected from the terminal when empty")
	simCmd.Flags().IntVar(&simWidth, "width", 100, "word wrap width of the rendered report")
}

func runSim(cmd *cobra.Command, args []string) error {
	if simTicks < 0 {
		return errors.New("--ticks must not be negative")
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if simSeed != 0 {
		cfg.Seed = simSeed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// session time advances one tick interval per step
	start := time.Now()
	var elapsed atomic.Int64
	clock := func() time.Time {
		return start.Add(time.Duration(elapsed.Load()) * cfg.TickInterval)
	}

	g := game.New(cfg, game.WithManualTicks(), game.WithClock(clock))
	defer g.Close()

	var r *runner.Runner
	if simStrategy != "" {
		strat, err := strategy.New(simStrategy, rand.New(rand.NewSource(cfg.Seed+1)))
		if err != nil {
			return err
		}
		r = runner.NewRunner(runner.DefaultConfig(), strat, g)
		defer r.Close()
	}

	ctx := cmd.Context()
	for i := 0; i < simTicks; i++ {
		elapsed.Add(1)
		if err := g.Advance(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
		if r != nil {
			if err := r.Step(ctx); err != nil {
				return fmt.Errorf("strategy at tick %d: %w", i+1, err)
			}
		}
	}

	snap := g.Snapshot()
	glog.Infof("sim: %d ticks, seed %d, %d trades, total %s", snap.Tick, cfg.Seed, snap.Portfolio.TradeCount, snap.TotalValue.StringFixed(2))

	md := report.Markdown(snap)
	if simRaw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	out, err := report.Render(md, simStyle, simWidth)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
