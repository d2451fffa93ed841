package answer

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts "MM:SS" or "H:MM:SS" to total seconds.
func ParseTimestamp(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// FilterTimestamps keeps only timestamps that fall within the video.
// A timestamp survives iff seconds(t) <= seconds(duration). When the
// duration is unknown or unparsable nothing is filtered; unparseable
// timestamps are dropped.
func FilterTimestamps(timestamps []string, duration string) []string {
	maxSeconds, ok := ParseTimestamp(duration)
	if !ok {
		return timestamps
	}
	kept := make([]string, 0, len(timestamps))
	for _, ts := range timestamps {
		seconds, ok := ParseTimestamp(ts)
		if !ok {
			continue
		}
		if seconds <= maxSeconds {
			kept = append(kept, ts)
		}
	}
	return kept
}
