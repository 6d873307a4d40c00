package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aleksandri0/mathpower/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mathpower",
	Short: "Mental arithmetic drills in the terminal",
	Long: `MathPower asks a run of calculations at the difficulty you pick, then shows
your answers next to the solutions.

Calculations come from the built-in arithmetic generator, an LLM provider
or a stored bank (see "mathpower bank").`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd, playOptions{})
	},
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Database file, or connection URL for postgres (overrides MATHPOWER_DB)")
	flags.String("db-driver", "", "Database driver: sqlite or postgres (overrides MATHPOWER_DB_DRIVER)")
	flags.Int("count", 0, "Calculations per difficulty (overrides MATHPOWER_COUNT)")
	flags.Uint64("seed", 0, "Seed for the arithmetic generator (overrides MATHPOWER_SEED)")
	flags.String("source", "", "Calculation source: arithmetic, llm or bank (overrides MATHPOWER_SOURCE)")
	flags.String("bank", "", "Bank ID or file to play when the source is bank (default: latest stored bank)")
	flags.String("reset-policy", "", "When a finished run is cleared: choose or restart (overrides MATHPOWER_RESET_POLICY)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the environment and applies the flags that were set on
// the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	return config.Load(func(cfg *config.Config) {
		if flags.Changed("db") {
			cfg.DBPath, _ = flags.GetString("db")
		}
		if flags.Changed("db-driver") {
			cfg.DBDriver, _ = flags.GetString("db-driver")
		}
		if flags.Changed("count") {
			cfg.Count, _ = flags.GetInt("count")
		}
		if flags.Changed("seed") {
			cfg.Seed, _ = flags.GetUint64("seed")
		}
		if flags.Changed("source") {
			cfg.Source, _ = flags.GetString("source")
		}
		if flags.Changed("reset-policy") {
			cfg.ResetPolicy, _ = flags.GetString("reset-policy")
		}
	})
}
