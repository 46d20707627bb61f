package utils

import (
	"fmt"
	"strconv"
)

// FormatValue renders a sample the way it should read on a dashboard:
// scientific notation for the very small vacuum-side pressures, plain
// decimal for everything else.
func FormatValue(value float64) string {
	if value != 0 && (value < 1e-3 && value > -1e-3) {
		return strconv.FormatFloat(value, 'e', 3, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatPercentage formats a float as percentage
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// TruncateString truncates a string to specified length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatBytes formats bytes into human readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
