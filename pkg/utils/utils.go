package utils

import "fmt"

// FormatSeconds renders a duration in the largest sensible unit.
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return fmt.Sprintf("%.0fs", seconds)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%.1fh", seconds/3600)
	}
	return fmt.Sprintf("%.0fm", seconds/60)
}
