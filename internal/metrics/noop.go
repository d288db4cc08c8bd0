package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncSignup()                                    {}
func (n *NoopRecorder) IncLogin(success bool)                         {}
func (n *NoopRecorder) IncPasswordChanged()                           {}
func (n *NoopRecorder) IncBoardCreated()                              {}
func (n *NoopRecorder) IncBoardDeleted()                              {}
func (n *NoopRecorder) IncMemoCreated()                               {}
func (n *NoopRecorder) IncMemoDeleted()                               {}
func (n *NoopRecorder) IncSummary(status string)                      {}
func (n *NoopRecorder) ObserveSummaryDuration(duration time.Duration) {}
