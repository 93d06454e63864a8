package metrics

import "time"

// ResultLabel enumerates item render outcomes for counters.
type ResultLabel string

const (
	ResultRendered ResultLabel = "rendered"
	ResultSkipped  ResultLabel = "skipped"
	ResultFailed   ResultLabel = "failed"
)

// PassLabel enumerates render pass modes.
type PassLabel string

const (
	PassStatic     PassLabel = "static"
	PassServerless PassLabel = "serverless"
	PassPreview    PassLabel = "preview"
)

// Recorder defines the observability hooks of a render pass. Implementations
// must tolerate being called from one goroutine per pass.
type Recorder interface {
	ObservePassDuration(pass PassLabel, d time.Duration)
	ObserveItemDuration(contentType string, d time.Duration)
	IncItemResult(contentType string, result ResultLabel)
	IncComponent(renderType string)
	SetPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(PassLabel, time.Duration) {}
func (NoopRecorder) ObserveItemDuration(string, time.Duration)    {}
func (NoopRecorder) IncItemResult(string, ResultLabel)            {}
func (NoopRecorder) IncComponent(string)                          {}
func (NoopRecorder) SetPages(int)                                 {}
