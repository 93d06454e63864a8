package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noop(context.Context, Args) (Output, error) { return Output{}, nil }

func TestRegistryRegisterAndList(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterFunc("zeta", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.MustRegister(Descriptor{Name: "alpha", Render: noop})

	if diff := cmp.Diff([]string{"alpha", "zeta"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("alpha") || reg.Has("missing") || reg.Has("") {
		t.Fatalf("unexpected Has results")
	}
}

func TestRegistryRejectsInvalidAndDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Descriptor{Render: noop}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register(Descriptor{Name: "nil"}); err == nil {
		t.Fatalf("expected error for nil render function")
	}
	if err := reg.RegisterFunc("dup", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterFunc("dup", noop); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Set(Descriptor{Name: "dup", Render: noop, Stylesheets: []string{"x.css"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	desc, _ := reg.Get("dup")
	if len(desc.Stylesheets) != 1 {
		t.Fatalf("Set did not replace descriptor")
	}
}

func TestRegistryMergeCopies(t *testing.T) {
	base := NewRegistry()
	base.MustRegister(Descriptor{Name: "container", Render: noop, Stylesheets: []string{"c.css"}})

	custom := func(context.Context, Args) (Output, error) { return Markup("custom"), nil }
	merged := base.Merge(map[string]RenderFunc{"container": custom, "extra": custom, "skip": nil})

	if base.Has("extra") {
		t.Fatalf("merge must not modify the receiver")
	}
	desc, ok := merged.Get("container")
	if !ok || desc.Stylesheets != nil {
		t.Fatalf("override should replace the default descriptor, got %#v", desc)
	}
	out, _ := desc.Render(context.Background(), Args{})
	if out.Start != "custom" {
		t.Fatalf("override not applied")
	}
	if merged.Has("skip") {
		t.Fatalf("nil overrides must be ignored")
	}
}

func TestRegistryRequire(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Descriptor{Name: "container", Render: noop})

	if err := reg.Require("container"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := reg.Require("container", "column", "form")
	if !errors.Is(err, ErrMissingRenderFunc) {
		t.Fatalf("expected ErrMissingRenderFunc, got %v", err)
	}
	if got := err.Error(); got != "render: missing render function \"column\"\nrender: missing render function \"form\"" {
		t.Fatalf("unexpected message %q", got)
	}
}
