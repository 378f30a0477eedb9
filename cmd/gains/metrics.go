// ABOUTME: CLI command for the daily metrics feed.
// ABOUTME: Shows metrics in chronological order, optionally filtered by name.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	metricsName  string
	metricsLimit int
)

var metricsCmd = &cobra.Command{
	Use:     "metrics",
	Aliases: []string{"m"},
	Short:   "Show daily metrics over time",
	Long: `Show daily metrics such as sleep, pain or mood, oldest first.

Use --name to follow one metric (case-insensitive). --limit keeps the most
recent N entries.

EXAMPLES:

  gains metrics
  gains metrics --name SleepQuality -n 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var name *string
		if metricsName != "" {
			name = &metricsName
		}

		feed, err := repo.MetricsFeed(cmd.Context(), name, metricsLimit)
		if err != nil {
			return fmt.Errorf("failed to list metrics: %w", err)
		}

		if len(feed) == 0 {
			fmt.Println("No metrics found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range feed {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(m.Date.Format("2006-01-02")),
				padRight(m.MetricName, 20),
				m.MetricValue,
				sentimentLabel(string(m.Sentiment)))
		}
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsName, "name", "t", "", "filter by metric name")
	metricsCmd.Flags().IntVarP(&metricsLimit, "limit", "n", 50, "max number of results")
	rootCmd.AddCommand(metricsCmd)
}
