package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatISODuration converts an ISO-8601 duration ("PT1H2M3S") into the
// display form the rest of the system uses: "1:02:03" or "5:09".
// Unknown input yields "".
func FormatISODuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(strings.TrimSpace(iso))
	if m == nil {
		return ""
	}
	days := atoiDefault(m[1])
	hours := atoiDefault(m[2]) + days*24
	minutes := atoiDefault(m[3])
	seconds := atoiDefault(m[4])
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatViewCount abbreviates a raw view count for display: 1530000 -> "1.5M".
func FormatViewCount(views uint64) string {
	switch {
	case views >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(views)/1_000_000)) + "M"
	case views >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(views)/1_000)) + "K"
	default:
		return strconv.FormatUint(views, 10)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
