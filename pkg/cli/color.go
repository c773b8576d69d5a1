package cli

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// detectColor decides whether to emit ANSI colors on stdout, honoring
// the NO_COLOR convention (https://no-color.org/) before terminal
// detection.
func detectColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
)

func (s *shell) paint(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + ansiReset
}

func (s *shell) red(text string) string   { return s.paint(ansiRed, text) }
func (s *shell) green(text string) string { return s.paint(ansiGreen, text) }
func (s *shell) dim(text string) string   { return s.paint(ansiDim, text) }

// stripFlagDashes normalizes -flag and --flag to flag.
func stripFlagDashes(arg string) string {
	return strings.TrimLeft(arg, "-")
}
