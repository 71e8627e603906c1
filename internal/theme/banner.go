package theme

import (
	"fmt"
	"io"

	"altlens/internal/logging"
	"altlens/internal/model"
)

const (
	cyan    = "\033[36m"
	magenta = "\033[35m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	bold    = "\033[1m"
	reset   = "\033[0m"
)

// Banner returns the startup banner.
func Banner() string {
	art := "" +
		"  ◉ ◎ ◉   " + magenta + "ALTLENS" + reset + "   ◉ ◎ ◉\n" +
		cyan + "   ▄▀▀▄ █   ▀█▀ █   █▀▀ █▄ █ ▄▀▀\n" + reset +
		cyan + "   █▀▀█ █▄▄  █  █▄▄ █▀▀ █ ▀█ ▄▄▀\n" + reset +
		yellow + "   ────────────────────────────────\n" + reset +
		"   alt account risk lens for Roblox\n"
	return art
}

// PrintBanner prints the banner to w.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, Banner())
}

// LevelColor returns the color for a progress level.
func LevelColor(level string) string {
	switch level {
	case logging.LevelSuccess:
		return green
	case logging.LevelWarning:
		return yellow
	case logging.LevelError:
		return red
	}
	return cyan
}

// CategoryColor returns the color for a verdict category.
func CategoryColor(category string) string {
	switch category {
	case model.VerdictFakeBadges, model.VerdictInsufficientBadges, model.VerdictHigh:
		return red
	case model.VerdictMediumHigh:
		return magenta
	case model.VerdictMedium:
		return yellow
	}
	return green
}

// Entry formats one progress entry as a colored terminal line.
func Entry(e model.LogEntry) string {
	return fmt.Sprintf("%s[%s]%s %s%s%s", cyan, e.Time.Format("15:04:05"), reset, LevelColor(e.Level), e.Message, reset)
}

// Verdict formats the final score line.
func Verdict(v model.Verdict) string {
	return fmt.Sprintf("%s%s%s%s (score %d)", bold, CategoryColor(v.Category), v.Category, reset, v.Score)
}
