// Package lmsapi defines the JSON payloads exchanged with the training platform's API.
package lmsapi

// Registration is the body of POST /auth/register.
type Registration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization"`
}

// Login is the body of POST /auth/login.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the profile returned by registration, login and GET /auth/me.
type User struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
}

// QuizSubmission is the body of POST /quiz/submit.
type QuizSubmission struct {
	CourseID string            `json:"courseId"`
	ModuleID string            `json:"moduleId"`
	Answers  map[string]string `json:"answers"`
	// TimeSpent is in seconds.
	TimeSpent int `json:"timeSpent"`
}
