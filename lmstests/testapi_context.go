package lmstests

import (
	"context"
	"fmt"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/config"
	"github.com/ethicomply/lms-contract-tests/framework"
	"github.com/ethicomply/lms-contract-tests/lmsapi"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// T represents one check in the suite.
//
// It implements the parts of testing.T that the assert and require packages use, so those can
// be used with a *T. It also carries the state shared by all checks in a run: the API client,
// the configuration, and the fixtures that earlier checks produce for later ones.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	ctx      context.Context
	client   *client.APIClient
	config   *config.Config
	fixtures fixtures
}

// fixtures are values that one check extracts from a response and later checks depend on.
// course and module hold IDs as the server sent them; courseID and moduleID are their path forms.
type fixtures struct {
	registration lmsapi.Registration
	user         lmsapi.User
	course       ldvalue.Value
	courseID     string
	enrolled     bool
	module       ldvalue.Value
	moduleID     string
	moduleTitle  string
	statementID  string
}

func newTestScope(c *framework.Context, env *environment) *T {
	return &T{context: c, env: env}
}

// Errorf is called by assertions to log a check failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a check should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Fatal fails the check with err as its message and exits it.
func (t *T) Fatal(err error) {
	t.context.Fatal(err)
}

// Run runs a check. It is not run if the run was interrupted. It returns true if the check
// ran and passed.
func (t *T) Run(name string, action func(*T)) bool {
	if t.interrupted() {
		return false
	}
	return t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// RunRequired is like Run, but the check ignores the command-line filters.
func (t *T) RunRequired(name string, action func(*T)) bool {
	if t.interrupted() {
		return false
	}
	return t.context.RunRequired(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// SkipCheck records that a check was not attempted.
func (t *T) SkipCheck(name, reason string) {
	t.context.SkipCheck(name, reason)
}

func (t *T) interrupted() bool {
	if err := t.env.ctx.Err(); err != nil {
		t.context.Abort(fmt.Sprintf("Testing interrupted (%s)", err))
		return true
	}
	return false
}

// Succeed sets the message reported if the check passes.
func (t *T) Succeed(format string, args ...interface{}) {
	t.context.Succeed(format, args...)
}

// Debug logs some debug output for the check. The output will be passed to the test logger at
// the end of the check.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Config() *config.Config {
	return t.env.config
}

// Client returns the API client, logging to this check's debug output.
func (t *T) Client() *client.APIClient {
	return t.env.client.WithLogger(t.context.DebugLogger())
}

// Send performs a request with the run's client. If there was no response, the check fails and
// exits.
func (t *T) Send(req client.Request) *client.Response {
	return t.SendWith(t.Client(), req)
}

// SendWith is like Send but uses the specified client.
func (t *T) SendWith(c *client.APIClient, req client.Request) *client.Response {
	resp, err := c.Do(t.env.ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// RequireJSON requires a 2xx status and a valid JSON body, failing and exiting the check
// otherwise.
func (t *T) RequireJSON(operation string, resp *client.Response) ldvalue.Value {
	body, err := resp.Decode(operation)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

// RequireShape fails and exits the check with a contract error if ok is false. The body is
// attached to the result as details.
func (t *T) RequireShape(ok bool, body ldvalue.Value, format string, args ...interface{}) {
	if ok {
		return
	}
	t.context.SetDetails(body)
	t.Fatal(&client.ContractError{Message: fmt.Sprintf(format, args...), Body: body})
}
