package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePassDuration(PassStatic, 150*time.Millisecond)
	pr.ObserveItemDuration("page", 20*time.Millisecond)
	pr.IncItemResult("page", ResultRendered)
	pr.IncComponent("container")
	pr.SetPages(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 5 {
		t.Fatalf("expected 5 metric families, got %d", len(mfs))
	}
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObservePassDuration(PassStatic, time.Second)
	pr.IncItemResult("page", ResultSkipped)
	pr.IncComponent("column")
	pr.SetPages(1)
}

func TestNoopRecorderSatisfiesRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncComponent("container")
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncItemResult("post", ResultRendered)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "contentkit_item_results_total") {
		t.Fatalf("metrics body missing counter:\n%s", rec.Body.String())
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetPages(7)

	path := filepath.Join(t.TempDir(), "contentkit.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "contentkit_pages 7") {
		t.Fatalf("textfile missing gauge:\n%s", data)
	}
}

func TestWriteTextfileNilRegistry(t *testing.T) {
	if err := WriteTextfile(filepath.Join(t.TempDir(), "x.prom"), nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}
