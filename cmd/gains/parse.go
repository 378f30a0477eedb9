// ABOUTME: CLI command for a dry-run extraction.
// ABOUTME: Prints the structured record for some text without saving anything.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var parseFile string

var parseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Extract structured data without saving",
	Long: `Run extraction on some text and print the resulting JSON.

Nothing is written to the database. Useful for checking how the model reads
a note before logging it.

EXAMPLES:

  gains parse "Deadlift 3x5 140kg, lower back a bit tight"
  gains parse --file notes.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readText(args, parseFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if raw == "" {
			return fmt.Errorf("workout text is required")
		}

		rec := logs.Preview(cmd.Context(), raw)
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}

		fmt.Println(string(data))
		if rec.IsEmpty() {
			color.Yellow("! No structured data could be extracted.")
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "read text from file (- for stdin)")
	rootCmd.AddCommand(parseCmd)
}
