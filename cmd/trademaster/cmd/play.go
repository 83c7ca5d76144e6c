package cmd

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/trader/runner"
	"github.com/zappabad/trademaster/internal/trader/strategy"
	"github.com/zappabad/trademaster/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive trading game",
	Long: `Open the terminal UI and start a live session.

Keys:
  ↑/↓   select instrument      0-9   edit trade size
  b     buy                    s     sell
  tab   cycle panels           q     quit

With --autopilot a built-in strategy trades alongside you.`,
	RunE: runPlay,
}

var playAutopilot string

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playAutopilot, "autopilot", "", fmt.Sprintf("strategy that trades automatically %v", strategy.Names()))
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	g := game.New(cfg)
	defer g.Close()

	if playAutopilot != "" {
		strat, err := strategy.New(playAutopilot, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return err
		}
		rcfg := runner.DefaultConfig()
		rcfg.TickInterval = cfg.TickInterval
		r := runner.NewRunner(rcfg, strat, g)
		r.Start()
		defer r.Close()
		glog.Infof("play: autopilot %q enabled", playAutopilot)
	}

	p := tea.NewProgram(tui.NewModel(g), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
