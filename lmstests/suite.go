package lmstests

import (
	"context"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/config"
	"github.com/ethicomply/lms-contract-tests/framework"
)

// Check names, as they appear in results.
const (
	CheckUserRegistration       = "User Registration"
	CheckUserLogin              = "User Login"
	CheckGetCurrentUser         = "Get Current User"
	CheckRejectUnauthenticated  = "Reject Unauthenticated Request"
	CheckGetCourses             = "Get Courses"
	CheckGetCourseDetails       = "Get Course Details"
	CheckCourseEnrollment       = "Course Enrollment"
	CheckRepeatCourseEnrollment = "Repeat Course Enrollment"
	CheckGetModules             = "Get Modules"
	CheckGetModuleContent       = "Get Module Content"
	CheckPostStatement          = "Post xAPI Statement"
	CheckGetStatements          = "Get xAPI Statements"
	CheckGetStatementsByVerb    = "Get xAPI Statements By Verb"
	CheckGetProgress            = "Get Progress"
	CheckGetAnalytics           = "Get Analytics"
	CheckQuizSubmission         = "Quiz Submission"
	CheckCSVExport              = "CSV Export"
)

const (
	abortRegistrationFailed = "Registration failed - stopping tests"
	abortLoginFailed        = "Login failed - stopping tests"

	skipReasonNoCourse    = "no course available from Get Courses"
	skipReasonNotEnrolled = "course enrollment did not succeed"
	skipReasonNoModule    = "no module available from Get Modules"
)

// AlwaysRun lists the checks that every other check depends on. They run regardless of the
// -run and -skip filters.
var AlwaysRun = []string{CheckUserRegistration, CheckUserLogin}

// RunTestSuite runs every check in order against the API that apiClient points to. It stops
// early if registration or login fails, or if ctx is cancelled.
func RunTestSuite(
	ctx context.Context,
	apiClient *client.APIClient,
	cfg *config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{
			context: c,
			env: &environment{
				ctx:    ctx,
				client: apiClient,
				config: cfg,
			},
		}

		if !t.RunRequired(CheckUserRegistration, DoUserRegistration) {
			abortUnlessInterrupted(t, abortRegistrationFailed)
			return
		}
		if !t.RunRequired(CheckUserLogin, DoUserLogin) {
			abortUnlessInterrupted(t, abortLoginFailed)
			return
		}

		t.Run(CheckGetCurrentUser, DoGetCurrentUser)
		t.Run(CheckRejectUnauthenticated, DoRejectUnauthenticatedRequest)

		runCourseChecks(t)

		t.Run(CheckPostStatement, DoPostStatement)
		t.Run(CheckGetStatements, DoGetStatements)
		t.Run(CheckGetStatementsByVerb, DoGetStatementsByVerb)
		t.Run(CheckGetProgress, DoGetProgress)
		t.Run(CheckGetAnalytics, DoGetAnalytics)
		t.Run(CheckQuizSubmission, DoSubmitQuiz)
		t.Run(CheckCSVExport, DoExportCSV)
	})
}

func runCourseChecks(t *T) {
	t.Run(CheckGetCourses, DoGetCourses)
	if t.env.fixtures.courseID == "" {
		skipAll(t, skipReasonNoCourse, CheckGetCourseDetails, CheckCourseEnrollment,
			CheckRepeatCourseEnrollment, CheckGetModules, CheckGetModuleContent)
		return
	}

	t.Run(CheckGetCourseDetails, DoGetCourseDetails)
	t.Run(CheckCourseEnrollment, DoCourseEnrollment)
	if !t.env.fixtures.enrolled {
		skipAll(t, skipReasonNotEnrolled, CheckRepeatCourseEnrollment, CheckGetModules, CheckGetModuleContent)
		return
	}

	t.Run(CheckRepeatCourseEnrollment, DoRepeatCourseEnrollment)
	t.Run(CheckGetModules, DoGetModules)
	if t.env.fixtures.moduleID == "" {
		skipAll(t, skipReasonNoModule, CheckGetModuleContent)
		return
	}
	t.Run(CheckGetModuleContent, DoGetModuleContent)
}

func skipAll(t *T, reason string, names ...string) {
	for _, name := range names {
		t.SkipCheck(name, reason)
	}
}

// abortUnlessInterrupted aborts the run with reason. If the run was already aborted because
// the context was cancelled, that reason is kept.
func abortUnlessInterrupted(t *T, reason string) {
	if !t.interrupted() {
		t.context.Abort(reason)
	}
}
