package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const summaryRule = "============================================================"

var (
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	skipColor  = color.New(color.FgYellow)
	titleColor = color.New(color.Bold)
)

// PrintResults writes the end-of-run summary: counts, the success rate, then the failed checks
// followed by the passed ones, each group in execution order.
func PrintResults(results Results, out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, summaryRule)
	titleColor.Fprintln(out, "TEST SUMMARY")
	fmt.Fprintln(out, summaryRule)

	fmt.Fprintf(out, "Total Tests: %d\n", len(results.Tests))
	passColor.Fprintf(out, "Passed: %d\n", results.Passed())
	failColor.Fprintf(out, "Failed: %d\n", len(results.Failures))
	if len(results.Skipped) > 0 {
		skipColor.Fprintf(out, "Skipped: %d\n", len(results.Skipped))
	}
	fmt.Fprintf(out, "Success Rate: %.1f%%\n", results.SuccessRate())

	if results.Aborted {
		fmt.Fprintln(out)
		failColor.Fprintf(out, "RUN ABORTED: %s\n", results.AbortReason)
	}

	if len(results.Failures) > 0 {
		fmt.Fprintln(out)
		failColor.Fprintln(out, "FAILED TESTS:")
		for _, r := range results.Failures {
			fmt.Fprintf(out, "  - %s: %s\n", r.Name(), r.Message)
		}
	}

	if results.Passed() > 0 {
		fmt.Fprintln(out)
		passColor.Fprintln(out, "PASSED TESTS:")
		for _, r := range results.Tests {
			if r.Success {
				fmt.Fprintf(out, "  - %s: %s\n", r.Name(), r.Message)
			}
		}
	}

	if len(results.Skipped) > 0 {
		fmt.Fprintln(out)
		skipColor.Fprintln(out, "SKIPPED TESTS:")
		for _, r := range results.Skipped {
			fmt.Fprintf(out, "  - %s: %s\n", r.Name(), strings.TrimSpace(r.Message))
		}
	}
}
