package lmstests

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/lmsapi"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Used for the statement's activity when no module was fetched earlier in the run.
const (
	defaultActivityCourseID    = "course-001"
	defaultActivityModuleID    = "module-001-01"
	defaultActivityTitle       = "Introduction to Business Ethics"
	defaultActivityDescription = "First module of ethics training"

	experiencedDuration = 8*time.Minute + 30*time.Second
)

func statementActivity(t *T) lmsapi.ModuleActivity {
	f := t.env.fixtures
	m := lmsapi.ModuleActivity{
		BaseURL:     t.Config().Statements.ActivityBaseURL,
		CourseID:    defaultActivityCourseID,
		ModuleID:    defaultActivityModuleID,
		Title:       defaultActivityTitle,
		Description: defaultActivityDescription,
	}
	if f.courseID != "" && f.moduleID != "" {
		m.CourseID, m.ModuleID = f.courseID, f.moduleID
		if f.moduleTitle != "" {
			m.Title = f.moduleTitle
			m.Description = ""
		}
	}
	return m
}

// DoPostStatement records that the user experienced a module.
func DoPostStatement(t *T) {
	statement := lmsapi.ExperiencedStatement(t.env.fixtures.user, statementActivity(t), experiencedDuration, time.Now())
	statement.ID = lmsapi.NewStatementID()

	resp := t.Send(client.Request{Method: http.MethodPost, Path: "/statements", Body: statement})
	body := t.RequireJSON("Statement", resp)
	id := stringProp(body, "id")
	t.RequireShape(truthy(body.GetByKey("success")) && id != "", body, "Invalid statement response")
	if id != statement.ID {
		t.Debug("Server stored statement as %s instead of the requested ID %s", id, statement.ID)
	}

	t.env.fixtures.statementID = id
	t.Succeed("xAPI statement stored with ID: %s", id)
}

// DoGetStatements lists the user's statements. If a statement was stored earlier in the run,
// the list must not be empty.
func DoGetStatements(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/statements"})
	body := t.RequireJSON("Get statements", resp)
	statements := body.GetByKey("statements")
	t.RequireShape(isArray(statements), body, "Invalid statements format")
	if t.env.fixtures.statementID != "" {
		t.RequireShape(statements.Count() >= 1, body, "No statements returned after storing one")
	}

	t.Succeed("Retrieved %d xAPI statements", statementCount(body, statements))
}

// DoGetStatementsByVerb queries statements filtered by verb, and checks that the filter and
// the limit were applied.
func DoGetStatementsByVerb(t *T) {
	var limit ldvalue.OptionalInt
	if n := t.Config().Statements.Limit; n > 0 {
		limit = ldvalue.NewOptionalInt(n)
	}
	query := url.Values{"verb": {lmsapi.VerbExperienced}}
	if limit.IsDefined() {
		query.Set("limit", strconv.Itoa(limit.IntValue()))
	}

	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/statements", Query: query})
	body := t.RequireJSON("Get statements by verb", resp)
	statements := body.GetByKey("statements")
	t.RequireShape(isArray(statements), body, "Invalid statements format")
	for i := 0; i < statements.Count(); i++ {
		verb := statements.GetByIndex(i).GetByKey("verb").GetByKey("id").StringValue()
		t.RequireShape(verb == lmsapi.VerbExperienced, statements.GetByIndex(i),
			"Statement %d has verb %q, expected only %q", i, verb, lmsapi.VerbExperienced)
	}
	if limit.IsDefined() {
		t.RequireShape(statements.Count() <= limit.IntValue(), body,
			"Returned %d statements, more than the limit of %d", statements.Count(), limit.IntValue())
	}
	if t.env.fixtures.statementID != "" {
		t.RequireShape(statements.Count() >= 1, body, "No experienced statements returned after storing one")
	}

	t.Succeed("Retrieved %d xAPI statements with verb experienced", statements.Count())
}

// statementCount prefers the count property and falls back to the length of the list.
func statementCount(body, statements ldvalue.Value) int {
	if count := body.GetByKey("count"); count.Type() == ldvalue.NumberType {
		return count.IntValue()
	}
	return statements.Count()
}
