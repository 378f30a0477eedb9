// ABOUTME: CLI commands for browsing exercises.
// ABOUTME: Lists known exercises and shows one exercise's full history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gains/internal/storage"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "Browse exercises and their history",
}

var exercisesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every exercise seen so far",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises yet.")
			return nil
		}

		for _, ex := range exercises {
			fmt.Printf("%s %s\n", color.New(color.Faint).Sprint(ex.ID.String()[:8]), ex.Name)
		}
		return nil
	},
}

var exercisesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show every recorded set and note for an exercise",
	Long: `Show the history of one exercise, oldest first.

The name is matched case-insensitively.

EXAMPLES:

  gains exercises show "pull ups"
  gains ex show squat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := repo.GetExercise(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		history, err := repo.ExerciseHistory(cmd.Context(), ex.ID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Println(ex.Name)
		if len(history.Entries) == 0 {
			faint.Println("No sets recorded.")
		}
		for _, e := range history.Entries {
			fmt.Printf("  %s %s %s x %s @ %s\n",
				e.Date.Format("2006-01-02"),
				padRight(truncate(displaySession(e.SessionName), 16), 16),
				storage.FormatInt(e.Sets),
				storage.FormatInt(e.Reps),
				storage.FormatWeight(e.Weight))
		}

		if len(history.Notes) > 0 {
			fmt.Println()
			bold.Println("Notes")
			for _, n := range history.Notes {
				fmt.Printf("  %s %s %s\n", n.Date.Format("2006-01-02"), n.Text, sentimentLabel(string(n.Sentiment)))
			}
		}
		return nil
	},
}

func init() {
	exercisesCmd.AddCommand(exercisesListCmd, exercisesShowCmd)
	rootCmd.AddCommand(exercisesCmd)
}
