package cmd

import (
	"context"
	"flag"

	"github.com/spf13/cobra"

	"github.com/zappabad/trademaster/internal/config"
	"github.com/zappabad/trademaster/internal/game"
)

var rootCmd = &cobra.Command{
	Use:   "trademaster",
	Short: "A stock-trading simulation game for the terminal",
	Long: `TradeMaster is a single-player stock-trading game.

Prices follow a trend-biased random walk. Buy and sell with virtual cash,
earn experience, unlock achievements and read the AI market insights.

  trademaster play                 start the interactive game
  trademaster sim --ticks 120      run a headless session and print a report
  trademaster config init          write a default configuration file

Logs are written by glog to the temp directory unless --logtostderr is set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the standard flag set
		return flag.CommandLine.Parse(nil)
	},
}

var (
	configPath string
	envFiles   []string
)

// Execute adds all child commands to the root command and runs it.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files with TRADEMASTER_* overrides (default .env)")
}

// loadGameConfig resolves the session configuration from the --config
// file, dotenv files and the environment.
func loadGameConfig() (game.Config, error) {
	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return game.Config{}, err
	}
	return cfg.GameConfig()
}
