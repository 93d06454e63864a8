package render

import (
	"slices"

	"github.com/goliatone/go-contentkit/pkg/content"
)

// State accumulates what a page render discovers: the component types it used,
// in first-use order, and the headings of each top-level content zone. A fresh
// State is used per item.
type State struct {
	contains []string
	seen     map[string]struct{}
	zones    []*content.HeadingZone
}

// NewState returns a State holding a single empty heading zone.
func NewState() *State {
	return &State{
		seen:  make(map[string]struct{}),
		zones: []*content.HeadingZone{{}},
	}
}

// PageContains returns the component types used so far. The result is never
// nil.
func (s *State) PageContains() []string {
	return append([]string{}, s.contains...)
}

// Headings returns a copy of every heading zone. There is always at least one.
func (s *State) Headings() []content.HeadingZone {
	out := make([]content.HeadingZone, len(s.zones))
	for idx, zone := range s.zones {
		out[idx] = content.HeadingZone{Items: slices.Clone(zone.Items)}
	}
	return out
}

func (s *State) use(renderType string) {
	if _, ok := s.seen[renderType]; ok {
		return
	}
	s.seen[renderType] = struct{}{}
	s.contains = append(s.contains, renderType)
}

func (s *State) zone() *content.HeadingZone {
	return s.zones[len(s.zones)-1]
}

func (s *State) nextZone() {
	s.zones = append(s.zones, &content.HeadingZone{})
}
