package track

import "fmt"

// FormatDuration renders nonnegative whole seconds for display:
// "S sec" below one minute, "MM:SS min" below one hour, "HH:MM:SS" from
// one hour up (hours unbounded). Negative input is clamped to zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours == 0 {
		return fmt.Sprintf("%02d:%02d min", minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
