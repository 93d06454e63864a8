package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every exported metric.
const Namespace = "contentkit"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	passDuration *prom.HistogramVec
	itemDuration *prom.HistogramVec
	itemResults  *prom.CounterVec
	components   *prom.CounterVec
	pages        prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil reg
// gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.passDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of a full render pass",
			Buckets:   prom.DefBuckets,
		}, []string{"pass"})
		pr.itemDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "item_duration_seconds",
			Help:      "Duration of rendering one content item",
			Buckets:   prom.DefBuckets,
		}, []string{"content_type"})
		pr.itemResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "item_results_total",
			Help:      "Item render outcomes by content type",
		}, []string{"content_type", "result"})
		pr.components = prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "component_pages_total",
			Help:      "Pages using each render type",
		}, []string{"render_type"})
		pr.pages = prom.NewGauge(prom.GaugeOpts{
			Namespace: Namespace,
			Name:      "pages",
			Help:      "Pages produced by the last render pass",
		})
		reg.MustRegister(pr.passDuration, pr.itemDuration, pr.itemResults, pr.components, pr.pages)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePassDuration(pass PassLabel, d time.Duration) {
	if p == nil || p.passDuration == nil {
		return
	}
	p.passDuration.WithLabelValues(string(pass)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveItemDuration(contentType string, d time.Duration) {
	if p == nil || p.itemDuration == nil {
		return
	}
	p.itemDuration.WithLabelValues(contentType).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncItemResult(contentType string, result ResultLabel) {
	if p == nil || p.itemResults == nil {
		return
	}
	p.itemResults.WithLabelValues(contentType, string(result)).Inc()
}

func (p *PrometheusRecorder) IncComponent(renderType string) {
	if p == nil || p.components == nil {
		return
	}
	p.components.WithLabelValues(renderType).Inc()
}

func (p *PrometheusRecorder) SetPages(n int) {
	if p == nil || p.pages == nil {
		return
	}
	p.pages.Set(float64(n))
}
