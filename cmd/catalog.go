package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/challenge"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the challenge catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all challenges (optionally filtered by difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			return err
		}

		var want challenge.Difficulty
		if d, _ := cmd.Flags().GetString("difficulty"); d != "" {
			parsed, ok := challenge.ParseDifficulty(d)
			if !ok {
				return fmt.Errorf("unknown difficulty %q (beginner, intermediate or advanced)", d)
			}
			want = parsed
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-36s  %-12s  %6s  %-8s  %s\n",
			"ID", "Title", "Difficulty", "Coins", "Time", "Concept")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		n := 0
		for _, s := range cat.List() {
			if want != "" && s.Difficulty != want {
				continue
			}
			title := s.Title
			if len(title) > 36 {
				title = title[:33] + "..."
			}
			fmt.Fprintf(out, "%-4s  %-36s  %-12s  %6d  %-8s  %s\n",
				s.ID, title, s.Difficulty.DisplayName(), s.CoinsReward, s.EstimatedTime, s.Concept)
			n++
		}

		fmt.Fprintf(out, "\n%d challenges\n", n)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("difficulty", "", "Filter by difficulty (beginner, intermediate, advanced)")

	catalogCmd.AddCommand(catalogListCmd)
}
