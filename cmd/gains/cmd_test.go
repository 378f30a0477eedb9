// ABOUTME: Tests for CLI helper functions and command wiring.
// ABOUTME: Tests readText, confirm, truncate, padRight, and command flags.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("  Squat 5x5 100kg\n"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
		want  string
	}{
		{
			name: "args joined",
			args: []string{"Bench", "3x8", "70kg"},
			want: "Bench 3x8 70kg",
		},
		{
			name:  "args win over stdin",
			args:  []string{"Rows"},
			stdin: "ignored",
			want:  "Rows",
		},
		{
			name: "file trimmed",
			file: file,
			want: "Squat 5x5 100kg",
		},
		{
			name:  "dash reads stdin",
			file:  "-",
			stdin: "Deadlift 3x3\n",
			want:  "Deadlift 3x3",
		},
		{
			name:  "piped stdin",
			stdin: "Dips 3x10",
			want:  "Dips 3x10",
		},
		{
			name: "nothing given",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readText(tt.args, tt.file, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readText failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("readText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := readText(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"y", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirm(strings.NewReader(tt.input), &out, "Sure? ")
			if err != nil {
				t.Fatalf("confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if out.String() != "Sure? " {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"empty string", "", 10, ""},
		{"multibyte cut on rune boundary", "Übersetzung über alles", 8, "Übers..."},
		{"multibyte fits by runes", "Kniebeugen größer", 17, "Kniebeugen größer"},
		{"emoji", "💪💪💪💪💪💪", 5, "💪💪..."},
		{"tiny limit", "squats", 2, "sq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.input, tt.maxLen, got)
			}
		})
	}
}

func TestSentimentLabel(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	color.NoColor = true
	for _, s := range []string{"negative", "present", "sore"} {
		if got := sentimentLabel(s); got != "("+s+")" {
			t.Errorf("sentimentLabel(%q) = %q", s, got)
		}
	}
	if got := sentimentLabel(""); got != "" {
		t.Errorf("sentimentLabel(\"\") = %q, want empty", got)
	}

	color.NoColor = false
	known := sentimentLabel("present")
	unknown := sentimentLabel("sore")
	if !strings.Contains(unknown, "(sore)") {
		t.Errorf("unknown label lost: %q", unknown)
	}
	if strings.Replace(known, "present", "sore", 1) == unknown {
		t.Errorf("expected unknown label to render differently from a known one, both %q", unknown)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("hi", 5); got != "hi   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("hello world", 5); got != "hello world" {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("Über", 6); got != "Über  " {
		t.Errorf("padRight = %q, want two spaces of padding", got)
	}
}

func TestDisplaySessionAndOneLine(t *testing.T) {
	if got := displaySession(""); got != "(untitled)" {
		t.Errorf("displaySession(\"\") = %q", got)
	}
	if got := displaySession("Legs"); got != "Legs" {
		t.Errorf("displaySession = %q", got)
	}
	if got := oneLine("Squat\n5x5\t 100kg "); got != "Squat 5x5 100kg" {
		t.Errorf("oneLine = %q", got)
	}
}

func TestSkipSetup(t *testing.T) {
	if !skipSetup(installSkillCmd) {
		t.Error("install-skill should not open the database")
	}
	if skipSetup(logAddCmd) {
		t.Error("log add needs the database")
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "gains" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gains")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}

	expected := []string{"log", "parse", "exercises", "metrics", "export", "import", "mcp", "serve", "install-skill"}
	assertSubcommands(t, rootCmd, expected)
}

func TestLogCmdSubcommands(t *testing.T) {
	assertSubcommands(t, logCmd, []string{"add", "edit", "delete", "list", "show", "reparse"})
}

func TestExercisesCmdSubcommands(t *testing.T) {
	assertSubcommands(t, exercisesCmd, []string{"list", "show"})
}

func TestLogAddCmdFlags(t *testing.T) {
	for _, c := range []*cobra.Command{logAddCmd, logEditCmd} {
		for _, name := range []string{"session", "date", "file"} {
			if c.Flags().Lookup(name) == nil {
				t.Errorf("Expected --%s flag on log %s", name, c.Name())
			}
		}
	}
}

func TestLogListCmdFlags(t *testing.T) {
	limitFlag := logListCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on log list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

func TestLogDeleteCmd(t *testing.T) {
	if logDeleteCmd.Flags().Lookup("force") == nil {
		t.Error("Expected --force flag on log delete command")
	}

	expectedAliases := map[string]bool{"del": false, "rm": false}
	for _, alias := range logDeleteCmd.Aliases {
		if _, ok := expectedAliases[alias]; ok {
			expectedAliases[alias] = true
		}
	}
	for alias, found := range expectedAliases {
		if !found {
			t.Errorf("Expected alias %q for log delete", alias)
		}
	}
}

func TestMetricsCmdFlags(t *testing.T) {
	if metricsCmd.Flags().Lookup("name") == nil {
		t.Error("Expected --name flag on metrics command")
	}
	limitFlag := metricsCmd.Flags().Lookup("limit")
	if limitFlag == nil || limitFlag.DefValue != "50" {
		t.Error("Expected --limit flag defaulting to 50 on metrics command")
	}
}

func TestExportCmd(t *testing.T) {
	for _, name := range []string{"output", "since"} {
		if exportCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on export command", name)
		}
	}

	expected := map[string]bool{"json": false, "yaml": false, "markdown": false}
	for _, arg := range exportCmd.ValidArgs {
		if _, ok := expected[arg]; ok {
			expected[arg] = true
		}
	}
	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}
}

func TestServeCmdFlags(t *testing.T) {
	portFlag := serveCmd.Flags().Lookup("port")
	if portFlag == nil {
		t.Fatal("Expected --port flag on serve command")
	}
	if portFlag.DefValue != "8088" {
		t.Errorf("Expected default port 8088, got %s", portFlag.DefValue)
	}
}

func assertSubcommands(t *testing.T, parent *cobra.Command, expected []string) {
	t.Helper()

	names := make(map[string]bool)
	for _, c := range parent.Commands() {
		names[c.Name()] = true
	}
	for _, want := range expected {
		if !names[want] {
			t.Errorf("Expected %s subcommand %q not found", parent.Name(), want)
		}
	}
}
