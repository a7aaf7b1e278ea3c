package framework

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func makeResult(name string, success bool, message string) TestResult {
	return TestResult{TestID: TestID{Path: []string{name}}, Success: success, Message: message}
}

func TestPrintResultsListsFailuresBeforePassesInExecutionOrder(t *testing.T) {
	withoutColor(t)

	a := makeResult("A", true, "fine")
	b := makeResult("B", false, "broke")
	c := makeResult("C", true, "also fine")
	d := makeResult("D", false, "also broke")
	results := Results{
		Tests:    []TestResult{a, b, c, d},
		Failures: []TestResult{b, d},
	}

	var buf bytes.Buffer
	PrintResults(results, &buf)
	out := buf.String()

	assert.Contains(t, out, "Total Tests: 4\n")
	assert.Contains(t, out, "Passed: 2\n")
	assert.Contains(t, out, "Failed: 2\n")
	assert.Contains(t, out, "Success Rate: 50.0%\n")
	assert.NotContains(t, out, "Skipped:")

	order := []string{"FAILED TESTS:", "  - B: broke", "  - D: also broke",
		"PASSED TESTS:", "  - A: fine", "  - C: also fine"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		assert.Greater(t, i, last, "expected %q after previous line", s)
		last = i
	}
}

func TestPrintResultsWithAllPassed(t *testing.T) {
	withoutColor(t)

	results := Results{Tests: []TestResult{makeResult("A", true, "ok"), makeResult("B", true, "ok")}}
	var buf bytes.Buffer
	PrintResults(results, &buf)

	assert.Contains(t, buf.String(), "Success Rate: 100.0%")
	assert.NotContains(t, buf.String(), "FAILED TESTS:")
}

func TestPrintResultsShowsAbortAndSkipped(t *testing.T) {
	withoutColor(t)

	results := Results{
		Tests:       []TestResult{makeResult("User Registration", false, "Registration failed with status 500")},
		Skipped:     []TestResult{{TestID: TestID{Path: []string{"Get Modules"}}, Message: "no course", Skipped: true}},
		Aborted:     true,
		AbortReason: "Registration failed - stopping tests",
	}
	results.Failures = results.Tests
	var buf bytes.Buffer
	PrintResults(results, &buf)
	out := buf.String()

	assert.Contains(t, out, "Success Rate: 0.0%")
	assert.Contains(t, out, "Skipped: 1\n")
	assert.Contains(t, out, "RUN ABORTED: Registration failed - stopping tests")
	assert.Contains(t, out, "  - Get Modules: no course")
}

func TestSuccessRateWithNoTests(t *testing.T) {
	assert.Equal(t, float64(0), Results{}.SuccessRate())
}
