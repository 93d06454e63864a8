// Package metrics records render pass metrics. The orchestrator talks to the
// Recorder interface; NoopRecorder is the default and PrometheusRecorder
// exports to a Prometheus registry.
package metrics
