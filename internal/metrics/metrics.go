// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Summary outcome labels.
const (
	SummarySuccess = "success"
	SummarySkipped = "skipped"
	SummaryFailed  = "failed"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncSignup()
	IncLogin(success bool)
	IncPasswordChanged()

	// Board and memo metrics
	IncBoardCreated()
	IncBoardDeleted()
	IncMemoCreated()
	IncMemoDeleted()

	// Summarization metrics
	IncSummary(status string)
	ObserveSummaryDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
