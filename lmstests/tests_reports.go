package lmstests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/lmsapi"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const csvContentType = "text/csv"

// DoGetProgress lists the user's per-enrollment progress. A course enrolled in earlier in the
// run must be listed.
func DoGetProgress(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/progress"})
	body := t.RequireJSON("Get progress", resp)
	progress := body.GetByKey("progress")
	t.RequireShape(isArray(progress), body, "Invalid progress format")

	if f := t.env.fixtures; f.enrolled {
		t.RequireShape(listsCourse(progress, f.course), body,
			"Enrolled course %s is missing from progress", f.course.JSONString())
	}
	t.Succeed("Retrieved progress for %d enrollments", progress.Count())
}

func listsCourse(progress, course ldvalue.Value) bool {
	for i := 0; i < progress.Count(); i++ {
		if progress.GetByIndex(i).GetByKey("courseId").Equal(course) {
			return true
		}
	}
	return false
}

// DoGetAnalytics fetches the user's learning analytics.
func DoGetAnalytics(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/analytics"})
	body := t.RequireJSON("Get analytics", resp)
	t.RequireShape(hasKey(body, "totalStatements") && hasKey(body, "verbCounts"), body,
		"Invalid analytics format")
	t.Succeed("Analytics retrieved - %s total statements", body.GetByKey("totalStatements").JSONString())
}

// DoSubmitQuiz submits the known-correct answers for the configured assessment. Only the shape
// of the grading response is checked, not the score.
func DoSubmitQuiz(t *T) {
	quiz := t.Config().Quiz
	submission := lmsapi.FullyCorrectQuiz(quiz.CourseID, quiz.ModuleID)

	resp := t.Send(client.Request{Method: http.MethodPost, Path: "/quiz/submit", Body: submission})
	body := t.RequireJSON("Quiz submission", resp)
	t.RequireShape(hasKey(body, "score") && hasKey(body, "passed") && hasKey(body, "results"), body,
		"Invalid quiz response format")
	t.Succeed("Quiz submitted - Score: %s%%, Passed: %s",
		body.GetByKey("score").JSONString(), body.GetByKey("passed").JSONString())
}

// DoExportCSV downloads the CSV report. It is recognized by its content type; the body only
// has to be non-empty.
func DoExportCSV(t *T) {
	resp := t.Send(client.Request{Method: http.MethodGet, Path: "/reports/csv"})
	if err := resp.StatusError("CSV export"); err != nil {
		t.Fatal(err)
	}
	contentType := resp.ContentType()
	if !strings.Contains(contentType, csvContentType) {
		t.Fatal(&client.ContractError{Message: fmt.Sprintf("Invalid content type: %s", contentType)})
	}
	content := string(resp.Body)
	if strings.TrimSpace(content) == "" {
		t.Fatal(&client.ContractError{Message: "CSV export returned an empty body", Body: ldvalue.String(content)})
	}

	lines := strings.Split(content, "\n")
	t.Debug("CSV header: %s", lines[0])
	t.Succeed("CSV exported successfully - %d lines", len(lines))
}
