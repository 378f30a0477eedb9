// ABOUTME: Install Claude Code skill for gains
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/gains/

package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the gains skill for Claude Code.

This copies the skill definition to ~/.claude/skills/gains/
so Claude Code knows how to log workouts and read your history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(skillDir(home), cmd.InOrStdin(), cmd.OutOrStdout(), skillSkipConfirm)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillDir(home string) string {
	return filepath.Join(home, ".claude", "skills", "gains")
}

// installSkill writes the embedded SKILL.md into dir, asking first unless
// skipConfirm is set.
func installSkill(dir string, in io.Reader, out io.Writer, skipConfirm bool) error {
	skillPath := filepath.Join(dir, "SKILL.md")

	fmt.Fprintln(out, "Gains skill for Claude Code")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Lets Claude Code log workouts from free text, look up exercise")
	fmt.Fprintln(out, "history and follow daily metrics through the gains MCP tools.")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Destination: %s\n", skillPath)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: the existing skill file will be overwritten.")
	}
	fmt.Fprintln(out)

	if !skipConfirm {
		ok, err := confirm(in, out, "Install the gains skill? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(out, "✓ Installed gains skill")
	fmt.Fprintln(out, `Try asking Claude: "Log today: squat 5x5 at 100kg, slept badly"`)
	return nil
}
