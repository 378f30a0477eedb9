// ABOUTME: CLI commands for managing workout logs.
// ABOUTME: Provides log add/edit/delete/list/show/reparse over the lifecycle service.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/harperreed/gains/internal/models"
	"github.com/harperreed/gains/internal/storage"
	"github.com/harperreed/gains/internal/workoutlog"
	"github.com/spf13/cobra"
)

var (
	logSession string
	logDate    string
	logFile    string
	logForce   bool
	logLimit   int
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Manage workout logs",
	Long: `Manage free-text workout logs.

Each log keeps the text you wrote. Exercises, metrics and notes are
extracted from it and replaced whenever the log is edited or reparsed.

EXAMPLES:

  gains log add --session "Legs" "Squat 5x5 100kg, knees fine"
  gains log add --date 2024-03-01 --file notes.txt
  echo "Bench 3x8 70kg" | gains log add
  gains log list -n 5
  gains log show abc123
  gains log edit abc123 "Squat 5x5 105kg"
  gains log reparse abc123
  gains log delete abc123`,
}

var logAddCmd = &cobra.Command{
	Use:     "add [text...]",
	Aliases: []string{"a"},
	Short:   "Save a workout and extract structured data",
	Long: `Save a free-text workout note and extract structured data from it.

Text comes from the arguments, from --file, or from stdin. The log is saved
even when nothing can be extracted; run 'gains log reparse <id>' later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readText(args, logFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if raw == "" {
			return fmt.Errorf("workout text is required")
		}

		date := models.TruncateDate(time.Now())
		if logDate != "" {
			if date, err = models.ParseDate(logDate); err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", logDate)
			}
		}

		res, err := logs.Create(cmd.Context(), logSession, date, raw)
		if err != nil {
			return fmt.Errorf("failed to save log: %w", err)
		}

		color.Green("✓ Logged %s", displaySession(logSession))
		printResult(res)
		if res.Empty {
			color.Yellow("! No structured data could be extracted. The text was saved.")
			fmt.Printf("  Run 'gains log reparse %s' to try again.\n", res.LogID.String()[:8])
		}
		return nil
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit <id> [text...]",
	Short: "Edit a workout and re-extract its data",
	Long: `Edit a workout log. Fields you don't pass are kept.

The log's exercises, metrics and notes are always replaced by a fresh
extraction over the resulting text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := repo.GetLog(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("log not found: %w", err)
		}

		raw := current.RawText
		if len(args) > 1 || logFile != "" {
			if raw, err = readText(args[1:], logFile, cmd.InOrStdin()); err != nil {
				return err
			}
		}

		session := current.SessionName
		if cmd.Flags().Changed("session") {
			session = logSession
		}

		date := current.Date
		if logDate != "" {
			if date, err = models.ParseDate(logDate); err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", logDate)
			}
		}

		res, err := logs.Edit(cmd.Context(), current.ID.String(), session, date, raw)
		if err != nil {
			return fmt.Errorf("failed to edit log: %w", err)
		}

		color.Green("✓ Updated %s", displaySession(session))
		printResult(res)
		if res.Empty {
			color.New(color.Faint).Println("  No structured data extracted from the new text.")
		}
		return nil
	},
}

var logReparseCmd = &cobra.Command{
	Use:   "reparse <id>",
	Short: "Re-run extraction on a saved workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := logs.Reparse(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to reparse log: %w", err)
		}

		color.Green("✓ Reparsed")
		printResult(res)
		if res.Empty {
			color.Yellow("! Still no structured data could be extracted.")
		}
		return nil
	},
}

var logDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout and its extracted data",
	Long: `Delete a workout log by its ID or ID prefix.

This permanently deletes the log and every exercise record, metric and note
extracted from it. Exercises themselves are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetLog(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("log not found: %w", err)
		}

		if !logForce {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s %s (%s)? [y/N] ",
				w.ID.String()[:8], displaySession(w.SessionName), w.DateString()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Canceled.")
				return nil
			}
		}

		if err := logs.Delete(cmd.Context(), w.ID.String()); err != nil {
			return fmt.Errorf("failed to delete log: %w", err)
		}

		color.Yellow("✗ Deleted %s", displaySession(w.SessionName))
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(w.ID.String()[:8]), w.DateString())
		return nil
	},
}

var logListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workout logs",
	Long: `List workout logs, most recent session first.

Each line shows: ID  DATE  SESSION  TEXT

The ID is an 8-character prefix you can use with show, edit and delete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListLogs(cmd.Context(), logLimit)
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range entries {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(w.ID.String()[:8]),
				w.DateString(),
				padRight(truncate(displaySession(w.SessionName), 20), 20),
				faint.Sprint(truncate(oneLine(w.RawText), 50)))
		}
		return nil
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its extracted data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := repo.GetLogDetail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("log not found: %w", err)
		}
		printDetail(d)
		return nil
	},
}

func printResult(res *workoutlog.Result) {
	notes := len(res.Record.GeneralNotes)
	for _, e := range res.Record.Exercises {
		notes += len(e.Notes)
	}
	fmt.Printf("  %s %d exercises, %d metrics, %d notes\n",
		color.New(color.Faint).Sprint(res.LogID.String()[:8]),
		len(res.Record.Exercises), len(res.Record.Metrics), notes)
}

func printDetail(d *models.LogDetail) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("%s  %s\n", displaySession(d.SessionName), d.DateString())
	faint.Printf("ID: %s\n\n", d.ID)
	fmt.Println(d.RawText)

	if d.IsDerivedEmpty() {
		fmt.Println()
		faint.Println("No structured data extracted.")
		return
	}

	if len(d.Exercises) > 0 {
		fmt.Println()
		bold.Println("Exercises")
		for _, r := range d.Exercises {
			fmt.Printf("  %s %s x %s @ %s\n",
				padRight(r.ExerciseName, 24),
				storage.FormatInt(r.Sets),
				storage.FormatInt(r.Reps),
				storage.FormatWeight(r.Weight))
		}
	}

	if len(d.Metrics) > 0 {
		fmt.Println()
		bold.Println("Metrics")
		for _, m := range d.Metrics {
			fmt.Printf("  %s %s %s\n", padRight(m.MetricName, 24), m.MetricValue, sentimentLabel(string(m.Sentiment)))
		}
	}

	if len(d.Notes) > 0 {
		fmt.Println()
		bold.Println("Notes")
		for _, n := range d.Notes {
			label := "[" + n.Category + "]"
			if n.ExerciseName != "" {
				label = n.ExerciseName + ":"
			}
			fmt.Printf("  %s %s %s\n", label, n.Text, sentimentLabel(string(n.Sentiment)))
		}
	}
}

// sentimentLabel colors a sentiment. Labels outside the known set are kept
// and shown in italics.
func sentimentLabel(s string) string {
	if s == "" {
		return ""
	}
	if !models.IsKnownSentiment(s) {
		return color.New(color.Faint, color.Italic).Sprintf("(%s)", s)
	}
	switch models.Sentiment(s) {
	case models.SentimentPositive, models.SentimentImproving:
		return color.GreenString("(%s)", s)
	case models.SentimentNegative, models.SentimentWorsening:
		return color.RedString("(%s)", s)
	default:
		return color.New(color.Faint).Sprintf("(%s)", s)
	}
}

// readText takes workout text from args, then file ("-" means stdin), then
// piped stdin when no args are given.
func readText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if stdin == nil {
		return "", nil
	}
	if f, ok := stdin.(*os.File); ok && file != "-" {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func displaySession(name string) string {
	if name == "" {
		return "(untitled)"
	}
	return name
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to maxLen runes, ending in "...".
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	for _, c := range []*cobra.Command{logAddCmd, logEditCmd} {
		c.Flags().StringVarP(&logSession, "session", "s", "", "session name")
		c.Flags().StringVarP(&logDate, "date", "d", "", "session date (YYYY-MM-DD)")
		c.Flags().StringVarP(&logFile, "file", "f", "", "read workout text from file (- for stdin)")
	}
	logDeleteCmd.Flags().BoolVarP(&logForce, "force", "y", false, "skip confirmation prompt")
	logListCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "max number of results")

	logCmd.AddCommand(logAddCmd, logEditCmd, logReparseCmd, logDeleteCmd, logListCmd, logShowCmd)
	rootCmd.AddCommand(logCmd)
}
