// Package display formats countdown values for people.
package display

import "fmt"

// FormatCount renders seconds as mm:ss, or h:mm:ss from one hour up.
func FormatCount(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatRepetitions renders repetition progress as "completed / total".
func FormatRepetitions(completed, total int) string {
	return fmt.Sprintf("%d / %d", completed, total)
}

// Status renders the one-line summary shown in the tray.
func Status(remaining, completed, total int) string {
	return fmt.Sprintf("%s · %s", FormatCount(remaining), FormatRepetitions(completed, total))
}
