package diagnostics

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/core"
)

func validationErr(kind core.IssueKind) error {
	return &core.ValidationError{Kind: kind, Template: "wts.Page.Blank", Reference: "wts.Feat.Missing"}
}

func TestNewIssue(t *testing.T) {
	t.Run("validation error carries kind", func(t *testing.T) {
		issue := NewIssue(fmt.Errorf("wrapped: %w", validationErr(core.MissingDependencyTemplate)))

		assert.Equal(t, core.MissingDependencyTemplate, issue.Kind)
		_, err := uuid.Parse(issue.ID)
		assert.NoError(t, err)
		assert.False(t, issue.Reported.IsZero())
		assert.Contains(t, issue.String(), "wts.Feat.Missing")
	})

	t.Run("plain error has no kind", func(t *testing.T) {
		issue := NewIssue(errors.New("boom"))
		assert.Empty(t, issue.Kind)
		assert.Equal(t, "boom", issue.String())
	})

	t.Run("ids are unique", func(t *testing.T) {
		a := NewIssue(errors.New("a"))
		b := NewIssue(errors.New("a"))
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Report(NewIssue(validationErr(core.InvalidLayoutKind)))
	rec.Report(NewIssue(validationErr(core.MissingLayoutTemplate)))

	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, []core.IssueKind{core.InvalidLayoutKind, core.MissingLayoutTemplate}, rec.Kinds())
	require.Len(t, rec.Strings(), 2)
	assert.Contains(t, rec.Strings()[0], string(core.InvalidLayoutKind))
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Report(NewIssue(errors.New("x")))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, rec.Len())
}

func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Tee(a, b, Discard).Report(NewIssue(errors.New("x")))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}
