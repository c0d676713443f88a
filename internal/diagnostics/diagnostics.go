// Package diagnostics collects validation issues raised while building a
// generation plan. Reporting is fire-and-forget: callers never wait on a
// sink and never observe its failures.
package diagnostics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
)

// Issue is one reported validation problem.
type Issue struct {
	// ID uniquely identifies the report.
	ID string

	// Kind is the issue category. Empty for errors that are not
	// *core.ValidationError.
	Kind core.IssueKind

	// Err is the reported error.
	Err error

	// Reported is the time the issue was created.
	Reported time.Time
}

// NewIssue wraps err in an Issue with a fresh ID.
func NewIssue(err error) Issue {
	issue := Issue{
		ID:       uuid.NewString(),
		Err:      err,
		Reported: time.Now(),
	}
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		issue.Kind = verr.Kind
	}
	return issue
}

func (i Issue) String() string {
	if i.Err == nil {
		return string(i.Kind)
	}
	return i.Err.Error()
}

// Reporter receives issues. Implementations must be safe for concurrent use
// and must not block the caller for long.
type Reporter interface {
	Report(issue Issue)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(issue Issue)

// Report implements Reporter.
func (f ReporterFunc) Report(issue Issue) {
	f(issue)
}

// Discard drops every issue.
var Discard Reporter = ReporterFunc(func(Issue) {})

// LogReporter writes each issue to the global logger at warn level.
type LogReporter struct{}

// Report implements Reporter.
func (LogReporter) Report(issue Issue) {
	output.Warn("validation issue", "kind", issue.Kind, "id", issue.ID, "error", issue.Err)
}

// Tee fans an issue out to several reporters in order.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(issue Issue) {
		for _, r := range reporters {
			r.Report(issue)
		}
	})
}

// Recorder keeps every reported issue in memory.
type Recorder struct {
	mu     sync.Mutex
	issues []Issue
}

// Report implements Reporter.
func (r *Recorder) Report(issue Issue) {
	r.mu.Lock()
	r.issues = append(r.issues, issue)
	r.mu.Unlock()
}

// Issues returns a copy of the recorded issues in report order.
func (r *Recorder) Issues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Kinds returns the kinds of the recorded issues in report order.
func (r *Recorder) Kinds() []core.IssueKind {
	issues := r.Issues()
	kinds := make([]core.IssueKind, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	return kinds
}

// Strings renders the recorded issues.
func (r *Recorder) Strings() []string {
	issues := r.Issues()
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = fmt.Sprintf("%s [%s]", issue, issue.ID)
	}
	return out
}

// Len returns the number of recorded issues.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issues)
}
