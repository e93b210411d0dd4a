package format

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/internal/tracker"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// FormatStatus returns a colored and bold scenario status
func FormatStatus(status string) string {
	switch status {
	case "passed":
		return color.New(color.Bold, color.FgGreen).Sprint(status)
	case "failed":
		return color.New(color.Bold, color.FgRed).Sprint(status)
	case "skipped":
		return color.New(color.Bold, color.FgCyan).Sprint(status)
	case "pending", "undefined":
		return color.New(color.Bold, color.FgYellow).Sprint(status)
	default:
		return color.New(color.Bold).Sprint(status)
	}
}

// FormatOutcome renders the known-bug reading of a status, or "" when it adds nothing.
func FormatOutcome(status, outcome string) string {
	if outcome == "" || outcome == status {
		return ""
	}
	return color.New(color.FgMagenta).Sprintf("(%s)", outcome)
}

// FormatRunMode returns the banner printed when a profile starts
func FormatRunMode(profile string, parallel int) string {
	green := color.New(color.FgGreen)
	return green.Sprint("Running profile ") +
		color.New(color.Bold, color.FgCyan).Sprint(profile) +
		green.Sprintf(" with %d worker(s)...", parallel)
}

// LogResult logs a scenario result with consistent formatting
func LogResult(log *logger.Logger, r tracker.Result) {
	// Using tabs for alignment since ANSI color codes don't affect tab stops
	log.Info("  %s\t%s\t%s %s",
		FormatStatus(r.Status),
		r.Location,
		r.Name,
		FormatOutcome(r.Status, r.Outcome),
	)
}

// LogSummary logs every result followed by the per-status totals
func LogSummary(log *logger.Logger, results []tracker.Result, elapsed time.Duration) {
	log.Info("Scenarios:")
	counts := map[string]int{}
	for _, r := range results {
		LogResult(log, r)
		counts[r.Status]++
	}
	log.Info("%d scenarios (%s, %s, %s, %s, %s) in %s",
		len(results),
		FormatStatus(fmt.Sprintf("%d passed", counts["passed"])),
		FormatStatus(fmt.Sprintf("%d failed", counts["failed"])),
		FormatStatus(fmt.Sprintf("%d skipped", counts["skipped"])),
		FormatStatus(fmt.Sprintf("%d pending", counts["pending"])),
		FormatStatus(fmt.Sprintf("%d undefined", counts["undefined"])),
		elapsed.Round(time.Millisecond),
	)
}

// LogProfiles logs a header and every profile in name order
func LogProfiles(log *logger.Logger, profiles map[string]config.Profile) {
	log.Info("Profiles:")
	for _, name := range config.ProfileNames(profiles) {
		p := profiles[name]
		selection := p.Tags
		if p.FromRerunFile {
			selection = "rerun file"
		}
		log.Info("  %s\t\t%s\t\t%s",
			color.New(color.Bold, color.FgCyan).Sprint(name),
			selection,
			p.Description,
		)
	}
}
