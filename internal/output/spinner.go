package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// WithSpinner runs fn while a spinner titled title is shown. The spinner
// is skipped when stdout is not a terminal or debug logging is on, since
// log lines would tear it.
func WithSpinner[T any](ctx context.Context, title string, fn func() (T, error)) (T, error) {
	if !IsTTY() || logger.GetLevel() <= log.DebugLevel {
		return fn()
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	var res result
	var finished bool
	spinErr := spinner.New().Title(title).Action(func() {
		select {
		case res = <-done:
			finished = true
		case <-ctx.Done():
		}
	}).Run()
	if spinErr != nil {
		var zero T
		return zero, fmt.Errorf("spinner: %w", spinErr)
	}

	if !finished {
		var zero T
		return zero, ctx.Err()
	}
	return res.v, res.err
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
