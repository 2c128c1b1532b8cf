package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <player-id>",
		Short: "Show a player's win/loss record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID := args[0]

			var result StatsResult
			if err := client.Get("/api/stats/"+url.PathEscape(playerID), &result); err != nil {
				return err
			}
			result.PlayerID = playerID

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
