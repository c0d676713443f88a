package diagnostics

import (
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the AsyncReporter queue depth used when none is given.
const DefaultBufferSize = 64

// AsyncReporter forwards issues to a sink on a single background goroutine.
// Report never blocks: when the buffer is full, or the reporter is closed,
// the issue is dropped and counted.
type AsyncReporter struct {
	sink    Reporter
	issues  chan Issue
	done    chan struct{}
	dropped atomic.Uint64

	// mu orders Report against Close so no send happens on a closed channel.
	mu     sync.RWMutex
	closed bool
}

// NewAsyncReporter starts an AsyncReporter delivering to sink. A buffer of
// zero or less uses DefaultBufferSize.
func NewAsyncReporter(sink Reporter, buffer int) *AsyncReporter {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	a := &AsyncReporter{
		sink:   sink,
		issues: make(chan Issue, buffer),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncReporter) run() {
	defer close(a.done)
	for issue := range a.issues {
		a.sink.Report(issue)
	}
}

// Report implements Reporter.
func (a *AsyncReporter) Report(issue Issue) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.issues <- issue:
	default:
		a.dropped.Add(1)
	}
}

// Close stops accepting issues and waits until every buffered issue has
// been delivered. Safe to call more than once.
func (a *AsyncReporter) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.issues)
	}
	a.mu.Unlock()
	<-a.done
}

// Dropped returns the number of issues discarded so far.
func (a *AsyncReporter) Dropped() uint64 {
	return a.dropped.Load()
}
