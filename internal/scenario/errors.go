package scenario

import (
	"fmt"
)

// AssertionError reports a checkpoint where the page differed from what the
// scenario expected.
type AssertionError struct {
	Step     string
	Expected string
	Actual   string
	// Err is the driver error behind the mismatch, if any.
	Err error
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", e.Step, e.Expected, e.Actual)
}

func (e *AssertionError) Unwrap() error {
	return e.Err
}

// StepError wraps a driver failure (usually a locator timeout) with the
// step that hit it.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepFailed(step string, err error) error {
	return &StepError{Step: step, Err: err}
}

func mismatch(step, expected, actual string) error {
	return &AssertionError{Step: step, Expected: expected, Actual: actual}
}
