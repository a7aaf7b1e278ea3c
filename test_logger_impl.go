package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
	skipLabel = color.New(color.FgYellow)
)

// ConsoleTestLogger reports each check as it runs.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "\n=== %s ===\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	prefix := "  "
	if kind := client.Kind(err); kind != "" {
		prefix = fmt.Sprintf("  [%s] ", kind)
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "%s%s\n", prefix, line)
		prefix = "  "
	}
}

func (c *ConsoleTestLogger) TestFinished(result framework.TestResult, debugOutput framework.CapturedOutput) {
	if result.Success {
		passLabel.Fprint(c.Out, "PASS")
		fmt.Fprintf(c.Out, ": %s - %s\n", result.Name(), result.Message)
	} else {
		failLabel.Fprint(c.Out, "FAIL")
		fmt.Fprintf(c.Out, ": %s - %s\n", result.Name(), result.Message)
		if result.Details != nil {
			fmt.Fprintf(c.Out, "  Details: %s\n", describeDetails(result.Details))
		}
	}
	if len(debugOutput) > 0 &&
		((!result.Success && c.DebugOutputOnFailure) || (result.Success && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	skipLabel.Fprint(c.Out, "SKIPPED")
	if reason == "" {
		fmt.Fprintf(c.Out, ": %s\n", id)
	} else {
		fmt.Fprintf(c.Out, ": %s (%s)\n", id, reason)
	}
}

func describeDetails(details interface{}) string {
	if s, ok := details.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", details)
}
