package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codekitchen/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished attempts recorded in a journal file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.JournalPath == "" {
			return errors.New("history needs a journal file: pass --journal PATH")
		}

		st, err := store.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		repo := st.EventRepo()
		ctx := cmd.Context()

		sessions, err := repo.SessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		totals, err := repo.CoinTotals(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-19s  %-6s  %-9s  %5s  %6s  %5s\n",
			"When", "Dish", "Result", "Moves", "Checks", "Hints")
		fmt.Fprintln(out, strings.Repeat("─", 62))
		for _, s := range sessions {
			result := "left"
			if s.Completed {
				result = "cooked"
			}
			fmt.Fprintf(out, "%-19s  %-6s  %-9s  %5d  %6d  %5d\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.ChallengeID, result, s.Moves, s.Checks, s.HintsBought)
		}

		fmt.Fprintf(out, "\n%d attempts, %d coins earned, %d coins spent\n",
			len(sessions), totals.Earned, totals.Spent)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of attempts to show (0 = all)")
}
