package program

import (
	"encoding/json"
	"strings"
)

// NormalizeAchievements accepts either a JSON array string or legacy
// newline-separated text and returns a clean tag list. The second return is
// false when the input looked like JSON but could not be parsed; callers log
// a warning and fall back to the empty list rather than failing the save.
func NormalizeAchievements(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}, true
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return []string{}, false
		}
		return cleanTags(list), true
	}

	// Legacy rows stored one achievement per line.
	return cleanTags(strings.Split(trimmed, "\n")), true
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
