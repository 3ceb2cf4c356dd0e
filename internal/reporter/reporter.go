package reporter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/StkConnects/Game-Tracker/internal/config"
	"github.com/StkConnects/Game-Tracker/internal/store"
	"github.com/StkConnects/Game-Tracker/pkg/utils"
)

// GameSummary is one title's accumulated time on one day.
type GameSummary struct {
	Title      string  `json:"title"`
	Seconds    float64 `json:"seconds"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage,omitempty"` // share of the day's total
}

// DaySummary aggregates one calendar day.
type DaySummary struct {
	Date         string        `json:"date"`
	Games        []GameSummary `json:"games"`
	TotalSeconds float64       `json:"total_seconds"`
	TotalHours   float64       `json:"total_hours"`
}

// Report is the full rendering of a usage store: days descending, titles by
// accumulated time descending within each day.
type Report struct {
	Days         []DaySummary `json:"days"`
	TotalSeconds float64      `json:"total_seconds"`
	TotalHours   float64      `json:"total_hours"`
	GeneratedAt  time.Time    `json:"generated_at"`
}

// Reporter renders usage stores into reports
type Reporter struct {
	config *config.Config
}

// New creates a new reporter
func New(cfg *config.Config) *Reporter {
	return &Reporter{config: cfg}
}

// Generate builds a report from a usage store snapshot. The store is read
// only; the reporter never mutates it.
func (r *Reporter) Generate(s store.UsageStore) *Report {
	report := &Report{GeneratedAt: time.Now()}

	for _, date := range s.Dates() {
		dayTotal := s.DayTotal(date)
		day := DaySummary{
			Date:         date,
			TotalSeconds: dayTotal,
			TotalHours:   dayTotal / 3600,
		}

		for _, title := range s.Titles(date) {
			seconds := s.Seconds(date, title)
			game := GameSummary{
				Title:   title,
				Seconds: seconds,
				Hours:   seconds / 3600,
			}
			if dayTotal > 0 {
				game.Percentage = seconds / dayTotal * 100
			}
			day.Games = append(day.Games, game)
		}

		report.Days = append(report.Days, day)
		report.TotalSeconds += dayTotal
	}

	report.TotalHours = report.TotalSeconds / 3600
	return report
}

// FormatText formats the report as human-readable text
func (r *Reporter) FormatText(report *Report) string {
	output := "Game Time Statistics\n"
	output += "====================\n"

	if len(report.Days) == 0 {
		output += "\nNo game time recorded.\n"
		return output
	}

	maxTitles := r.config.Report.MaxTitlesPerDay

	for _, day := range report.Days {
		output += fmt.Sprintf("\n%s (%.1f hours):\n", day.Date, day.TotalHours)

		for i, game := range day.Games {
			if maxTitles > 0 && i >= maxTitles {
				output += fmt.Sprintf("  ... and %d more\n", len(day.Games)-maxTitles)
				break
			}
			output += fmt.Sprintf("  %-40s %8s %6.1f%%\n",
				truncate(game.Title, 40),
				utils.FormatSeconds(game.Seconds),
				game.Percentage)
		}
	}

	output += fmt.Sprintf("\nTotal tracked: %.1f hours\n", report.TotalHours)
	return output
}

// FormatJSON formats the report as JSON
func (r *Reporter) FormatJSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
