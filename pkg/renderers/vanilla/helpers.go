package vanilla

import (
	"html"
	"strconv"
	"strings"
)

// classList joins base with the authored classes, dropping blanks and
// duplicates.
func classList(base, extra string) string {
	seen := map[string]struct{}{}
	var keep []string
	for _, token := range strings.Fields(base + " " + extra) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// attr renders ` key="value"`, or nothing for an empty value.
func attr(key, value string) string {
	if value == "" {
		return ""
	}
	return " " + key + `="` + html.EscapeString(value) + `"`
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "f-" + trimmed
}
