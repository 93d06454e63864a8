package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("classes") {
		_ = pongo2.RegisterFilter("classes", filterClasses)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterClasses appends the param class list to the input, dropping blanks
// and duplicates: {{ "o-field"|classes:extra }}.
func filterClasses(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	seen := make(map[string]struct{})
	var keep []string
	for _, value := range []*pongo2.Value{in, param} {
		if value == nil || value.IsNil() {
			continue
		}
		for _, token := range strings.Fields(value.String()) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			keep = append(keep, token)
		}
	}
	return pongo2.AsValue(strings.Join(keep, " ")), nil
}
