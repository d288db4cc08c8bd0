package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups                uint64
	LoginsSucceeded        uint64
	LoginsFailed           uint64
	PasswordsChanged       uint64
	BoardsCreated          uint64
	BoardsDeleted          uint64
	MemosCreated           uint64
	MemosDeleted           uint64
	SummariesSucceeded     uint64
	SummariesSkipped       uint64
	SummariesFailed        uint64
	SummaryDurationCount   uint64
	SummaryDurationTotalNs int64
}

// InMemoryRecorder keeps counters in process memory.
// It backs the /metrics endpoint and test assertions.
type InMemoryRecorder struct {
	signups                atomic.Uint64
	loginsSucceeded        atomic.Uint64
	loginsFailed           atomic.Uint64
	passwordsChanged       atomic.Uint64
	boardsCreated          atomic.Uint64
	boardsDeleted          atomic.Uint64
	memosCreated           atomic.Uint64
	memosDeleted           atomic.Uint64
	summariesSucceeded     atomic.Uint64
	summariesSkipped       atomic.Uint64
	summariesFailed        atomic.Uint64
	summaryDurationCount   atomic.Uint64
	summaryDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:                m.signups.Load(),
		LoginsSucceeded:        m.loginsSucceeded.Load(),
		LoginsFailed:           m.loginsFailed.Load(),
		PasswordsChanged:       m.passwordsChanged.Load(),
		BoardsCreated:          m.boardsCreated.Load(),
		BoardsDeleted:          m.boardsDeleted.Load(),
		MemosCreated:           m.memosCreated.Load(),
		MemosDeleted:           m.memosDeleted.Load(),
		SummariesSucceeded:     m.summariesSucceeded.Load(),
		SummariesSkipped:       m.summariesSkipped.Load(),
		SummariesFailed:        m.summariesFailed.Load(),
		SummaryDurationCount:   m.summaryDurationCount.Load(),
		SummaryDurationTotalNs: m.summaryDurationTotalNs.Load(),
	}
}

func (m *InMemoryRecorder) IncSignup() { m.signups.Add(1) }

func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		m.loginsSucceeded.Add(1)
		return
	}
	m.loginsFailed.Add(1)
}

func (m *InMemoryRecorder) IncPasswordChanged() { m.passwordsChanged.Add(1) }
func (m *InMemoryRecorder) IncBoardCreated()    { m.boardsCreated.Add(1) }
func (m *InMemoryRecorder) IncBoardDeleted()    { m.boardsDeleted.Add(1) }
func (m *InMemoryRecorder) IncMemoCreated()     { m.memosCreated.Add(1) }
func (m *InMemoryRecorder) IncMemoDeleted()     { m.memosDeleted.Add(1) }

// IncSummary counts a summarize call by outcome. Unknown labels are ignored.
func (m *InMemoryRecorder) IncSummary(status string) {
	switch status {
	case SummarySuccess:
		m.summariesSucceeded.Add(1)
	case SummarySkipped:
		m.summariesSkipped.Add(1)
	case SummaryFailed:
		m.summariesFailed.Add(1)
	}
}

// ObserveSummaryDuration records the latency of one external summarize call.
func (m *InMemoryRecorder) ObserveSummaryDuration(duration time.Duration) {
	m.summaryDurationCount.Add(1)
	m.summaryDurationTotalNs.Add(duration.Nanoseconds())
}
