package richtext

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-contentkit/pkg/content"
)

// Slugify turns heading text into an anchor id: accents are stripped, letters
// lowered and every run of other characters collapsed into a single dash.
func Slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(value) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueID returns base, suffixed with a counter when the zone already holds
// a heading with that id.
func uniqueID(base string, zone *content.HeadingZone) string {
	if base == "" {
		base = "section"
	}
	if zone == nil {
		return base
	}
	taken := make(map[string]struct{}, len(zone.Items))
	for _, h := range zone.Items {
		taken[h.ID] = struct{}{}
	}
	id := base
	for n := 2; ; n++ {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}
