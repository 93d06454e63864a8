package main

import (
	"testing"
	"time"
)

func TestIgnoreEvent(t *testing.T) {
	cases := map[string]bool{
		"content/page/about.yaml":      false,
		"content/.hidden.yaml":         true,
		"content/page/about.yaml~":     true,
		"content/page/.about.yaml.swp": true,
		"content/page/about.swx":       true,
		"content/#about.yaml#":         true,
		"content/Thumbs.db":            true,
	}
	for path, want := range cases {
		if got := ignoreEvent(path); got != want {
			t.Fatalf("ignoreEvent(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	fire, trigger := debouncer(20 * time.Millisecond)
	for range 5 {
		trigger()
	}

	select {
	case <-fire:
	case <-time.After(time.Second):
		t.Fatalf("debouncer never fired")
	}
	select {
	case <-fire:
		t.Fatalf("expected a single fire for a burst of triggers")
	case <-time.After(60 * time.Millisecond):
	}
}
