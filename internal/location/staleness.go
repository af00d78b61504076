package location

import (
	"strconv"
	"time"
)

// LastUpdateAgo mengubah timestamp sample jadi bucket yang enak dibaca di
// dashboard: "just now", "N minute(s) ago", "N hour(s) ago", "N day(s) ago".
// Timestamp kosong/rusak -> "unknown".
func LastUpdateAgo(timestamp string, now time.Time) string {
	if timestamp == "" {
		return "unknown"
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "unknown"
	}

	seconds := int64(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s ago"
}
