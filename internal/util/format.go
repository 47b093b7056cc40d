package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var builder strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		builder.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if builder.Len() > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + builder.String()
	}
	return builder.String()
}

// FormatPercent renders a ratio in [0, 1] as a percentage with one decimal.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatVideoDuration renders a length in seconds as 3s / 4m05s / 1h02m.
func FormatVideoDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
	}
}

// Gauge renders a score in [0, 1] as a fixed-width bar of filled and
// empty cells.
func Gauge(score float64, width int) string {
	filled := int(Clamp01(score) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// TruncateString truncates a string to maxRunes characters (rune-based,
// not byte-based). If truncated, appends "..." to the result.
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
