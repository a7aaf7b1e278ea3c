package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const defaultSuccessMessage = "OK"

// now is replaced in tests that need stable timestamps.
var now = time.Now

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single check, or of the top level of a run. It implements the
// subset of testing.T that the assert and require packages need, so checks can make assertions
// with those packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	message     string
	details     interface{}
	errors      []error
}

// Run creates the top-level Context and passes it to action, which is expected to call Run or
// RunRequired for each check. Unlike a check, the top level is not recorded as a result and a
// panic in it is not recovered.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	action(c)
	return env.results
}

func (c *Context) run(action func(*Context)) (result TestResult) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("check failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in check: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		result = c.result()
		if c.skipped {
			c.env.results.Skipped = append(c.env.results.Skipped, result)
			return
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
	return
}

func (c *Context) result() TestResult {
	r := TestResult{
		TestID:    c.id,
		Success:   !c.failed && !c.skipped,
		Timestamp: now(),
		Details:   c.details,
		Errors:    append([]error(nil), c.errors...),
		Skipped:   c.skipped,
	}
	switch {
	case c.skipped:
		r.Message = c.skipReason
	case c.failed:
		r.Message = firstLine(c.errors)
	case c.message != "":
		r.Message = c.message
	default:
		r.Message = defaultSuccessMessage
	}
	return r
}

func firstLine(errs []error) string {
	for _, err := range errs {
		if s := strings.TrimSpace(err.Error()); s != "" {
			return strings.SplitN(s, "\n", 2)[0]
		}
	}
	return "check failed with no failure message"
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a check as a child of this Context, unless the filter excludes it or the run has
// been aborted. It returns true only if the check ran and passed.
func (c *Context) Run(name string, action func(*Context)) bool {
	return c.runCheck(name, true, action)
}

// RunRequired is like Run, but ignores the filter. It is for checks that everything after them
// depends on.
func (c *Context) RunRequired(name string, action func(*Context)) bool {
	return c.runCheck(name, false, action)
}

func (c *Context) runCheck(name string, filtered bool, action func(*Context)) bool {
	if c.env.results.Aborted {
		return false
	}
	id := c.childID(name)

	c.env.testLogger.TestStarted(id)
	if filtered && c.env.filter != nil && !c.env.filter(id) {
		c.recordSkipped(id, "excluded by filter parameters")
		return false
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	result := c1.run(action)
	if result.Skipped {
		c.env.testLogger.TestSkipped(id, result.Message)
		return false
	}
	c.env.testLogger.TestFinished(result, c1.debugLogger.Output())
	return result.Success
}

// SkipCheck records that a check was not attempted, typically because something it depends on
// is missing. Skipped checks do not count toward the number of checks attempted.
func (c *Context) SkipCheck(name, reason string) {
	if c.env.results.Aborted {
		return
	}
	id := c.childID(name)
	c.env.testLogger.TestStarted(id)
	c.recordSkipped(id, reason)
}

func (c *Context) recordSkipped(id TestID, reason string) {
	c.env.results.Skipped = append(c.env.results.Skipped, TestResult{
		TestID:    id,
		Message:   reason,
		Timestamp: now(),
		Skipped:   true,
	})
	c.env.testLogger.TestSkipped(id, reason)
}

func (c *Context) childID(name string) TestID {
	return TestID{Path: append(append([]string(nil), c.id.Path...), name)}
}

// Abort stops the run: every later call to Run, RunRequired or SkipCheck does nothing. Only
// the first reason is kept.
func (c *Context) Abort(reason string) {
	if c.env.results.Aborted {
		return
	}
	c.env.results.Aborted = true
	c.env.results.AbortReason = reason
}

func (c *Context) Aborted() bool {
	return c.env.results.Aborted
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Fatal records err as a failure of the check and exits the check immediately.
func (c *Context) Fatal(err error) {
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
	c.FailNow()
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Succeed sets the message that is reported if the check passes.
func (c *Context) Succeed(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
}

// SetDetails attaches a payload to the check result, such as the response body that did not
// have the expected shape.
func (c *Context) SetDetails(details interface{}) {
	c.details = details
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
