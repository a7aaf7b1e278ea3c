package lmsapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const uniqueSuffixLength = 8

// NewUniqueSuffix returns a short random string for making names and emails distinct.
func NewUniqueSuffix() string {
	return uuid.NewString()[:uniqueSuffixLength]
}

// NewStatementID returns a random UUID, which xAPI allows a client to assign to a statement.
func NewStatementID() string {
	return uuid.NewString()
}

// NewRegistration generates a registration for a user that does not exist yet. The name and
// email both carry a fresh random suffix; the email's local part is the name in lower case
// with dots for spaces.
func NewRegistration(name, emailDomain, password, organization string) Registration {
	suffix := NewUniqueSuffix()
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	if local == "" {
		local = "user"
	}
	return Registration{
		Name:         fmt.Sprintf("%s %s", name, suffix),
		Email:        fmt.Sprintf("%s.%s@%s", local, suffix, emailDomain),
		Password:     password,
		Organization: organization,
	}
}

// FullyCorrectQuiz returns the answer set for the sample assessment module that is expected
// to score 100%.
func FullyCorrectQuiz(courseID, moduleID string) QuizSubmission {
	return QuizSubmission{
		CourseID: courseID,
		ModuleID: moduleID,
		Answers: map[string]string{
			"q1": "b",
			"q2": "b",
			"q3": "b",
			"q4": "a",
			"q5": "a",
		},
		TimeSpent: int((8 * time.Minute).Seconds()),
	}
}
