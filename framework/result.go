package framework

import (
	"strings"
	"time"
)

// Results is the ordered log of everything a run did.
type Results struct {
	// Tests holds every check that was attempted, in execution order.
	Tests []TestResult
	// Failures is the subset of Tests that failed.
	Failures []TestResult
	// Skipped holds checks that were not attempted.
	Skipped []TestResult

	Aborted     bool
	AbortReason string
}

// TestResult is the outcome of one check. It is a value and is never changed once recorded.
type TestResult struct {
	TestID    TestID
	Success   bool
	Message   string
	Timestamp time.Time
	Details   interface{}
	Errors    []error
	Skipped   bool
}

func (r TestResult) Name() string {
	return r.TestID.String()
}

func (r Results) OK() bool {
	return !r.Aborted && len(r.Failures) == 0
}

func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures)
}

// SuccessRate is the percentage of attempted checks that passed, or zero if none were attempted.
func (r Results) SuccessRate() float64 {
	if len(r.Tests) == 0 {
		return 0
	}
	return float64(r.Passed()) * 100 / float64(len(r.Tests))
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
