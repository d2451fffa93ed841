package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID parses a YouTube URL or bare video ID into the
// platform-native 11-character id. It recognizes watch?v=, youtu.be/,
// embed/, shorts/, and live/ link shapes.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if videoIDPattern.MatchString(raw) {
		return raw, true
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); videoIDPattern.MatchString(v) {
			return v, true
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && videoIDPattern.MatchString(parts[1]) {
			switch parts[0] {
			case "embed", "shorts", "live", "v":
				return parts[1], true
			}
		}
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDPattern.MatchString(id) {
			return id, true
		}
	}
	return "", false
}
