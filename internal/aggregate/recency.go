package aggregate

import (
	"fmt"
	"time"
)

// FormatRecency describes how long ago ts was relative to now, e.g.
// "just now", "1 minute" or "3 months". Every unit is a floor division of
// the elapsed time; months are 30 days and years 365 days. Timestamps after
// now are treated as "just now".
func FormatRecency(ts, now time.Time) string {
	elapsed := now.Sub(ts)
	seconds := int64(elapsed / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	months := days / 30
	years := days / 365

	switch {
	case seconds < 60:
		return "just now"
	case minutes < 60:
		return plural(minutes, "minute")
	case hours < 24:
		return plural(hours, "hour")
	case days < 30:
		return plural(days, "day")
	case months < 12:
		return plural(months, "month")
	default:
		return plural(years, "year")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
