package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContextFallsBackToDiscard(t *testing.T) {
	logger := FromContext(context.Background())
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("fallback logger must discard records")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("rendered", Slug("/about/"), Error(errors.New("x")))

	out := buf.String()
	if !strings.Contains(out, "slug=/about/") || !strings.Contains(out, "error=x") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestWithNilLoggerKeepsContext(t *testing.T) {
	ctx := context.Background()
	if WithLogger(ctx, nil) != ctx {
		t.Fatalf("nil logger must not wrap the context")
	}
}
