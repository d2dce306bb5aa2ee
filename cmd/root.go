package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codekitchen/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "codekitchen",
	Short: "Learn to code by putting recipes in order",
	Long: "CodeKitchen is a terminal game: each challenge is a shuffled program, and you\n" +
		"cook it by dragging the blocks into the right order. Correct dishes earn coins,\n" +
		"coins buy hints, and every solved dish unlocks the next one.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.Int("hint-cost", 0, "Coins per hint (overrides "+config.EnvHintCost+")")
	f.Int("starting-coins", 0, "Initial coin balance (overrides "+config.EnvStartingCoins+")")
	f.Duration("ack-delay", 0, "Celebration delay after a solve (overrides "+config.EnvAckDelay+")")
	f.String("catalog", "", "Path to a YAML challenge catalog (overrides "+config.EnvCatalog+")")
	f.String("journal", "", "Path to a SQLite activity journal; in-memory when empty (overrides "+config.EnvJournal+")")
	f.String("log-level", "", "debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	f.String("log-file", "", "Write logs to this file (overrides "+config.EnvLogFile+")")
	f.Uint64("seed", 0, "Seed for reproducible shuffles (overrides "+config.EnvSeed+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies any flags the user set
// explicitly, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("hint-cost") {
		cfg.HintCost, _ = flags.GetInt("hint-cost")
	}
	if flags.Changed("starting-coins") {
		cfg.StartingBalance, _ = flags.GetInt("starting-coins")
	}
	if flags.Changed("ack-delay") {
		cfg.AckDelay, _ = flags.GetDuration("ack-delay")
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("journal") {
		cfg.JournalPath, _ = flags.GetString("journal")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
