package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codekitchen/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the kitchen in the terminal (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("skip-welcome", false, "Go straight to the challenge list")
}

// runTUI builds dependencies and launches the Bubble Tea program.
func runTUI(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := openDeps(cfg, logDiscard)
	if err != nil {
		return err
	}
	defer d.Close()

	skip := false
	if f := cmd.Flags().Lookup("skip-welcome"); f != nil {
		skip, _ = cmd.Flags().GetBool("skip-welcome")
	}

	return app.Run(app.Options{
		Controller:    d.ctrl,
		Journal:       d.store.EventRepo(),
		SkipWelcome:   skip,
		StartingCoins: cfg.StartingBalance,
		HintCost:      cfg.HintCost,
	})
}
