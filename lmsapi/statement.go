package lmsapi

import (
	"strings"
	"time"

	"github.com/sosodev/duration"
)

const (
	VerbExperienced = "http://adlnet.gov/expapi/verbs/experienced"

	ActivityTypeModule = "http://adlnet.gov/expapi/activities/module"

	objectTypeAgent    = "Agent"
	objectTypeActivity = "Activity"
	languageTag        = "en-US"
)

// LanguageMap maps language tags to strings, as in an xAPI display or name property.
type LanguageMap map[string]string

// Statement is an xAPI statement as sent to POST /statements.
type Statement struct {
	ID        string   `json:"id,omitempty"`
	Actor     Agent    `json:"actor"`
	Verb      Verb     `json:"verb"`
	Object    Activity `json:"object"`
	Timestamp string   `json:"timestamp,omitempty"`
	Result    *Result  `json:"result,omitempty"`
}

type Agent struct {
	ObjectType string `json:"objectType"`
	Mbox       string `json:"mbox"`
	Name       string `json:"name,omitempty"`
}

type Verb struct {
	ID      string      `json:"id"`
	Display LanguageMap `json:"display,omitempty"`
}

type Activity struct {
	ObjectType string              `json:"objectType"`
	ID         string              `json:"id"`
	Definition *ActivityDefinition `json:"definition,omitempty"`
}

type ActivityDefinition struct {
	Type        string      `json:"type,omitempty"`
	Name        LanguageMap `json:"name,omitempty"`
	Description LanguageMap `json:"description,omitempty"`
}

type Result struct {
	Completion bool   `json:"completion"`
	Success    bool   `json:"success"`
	Duration   string `json:"duration,omitempty"`
	Score      *Score `json:"score,omitempty"`
}

type Score struct {
	Scaled float64 `json:"scaled"`
	Raw    float64 `json:"raw,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
}

// ModuleActivity identifies a course module as an xAPI activity.
type ModuleActivity struct {
	// BaseURL is the public site address that activity IDs are built from.
	BaseURL     string
	CourseID    string
	ModuleID    string
	Title       string
	Description string
}

// ID is the activity IRI, "<base>/courses/<course>/modules/<module>".
func (m ModuleActivity) ID() string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/courses/" + m.CourseID + "/modules/" + m.ModuleID
}

// AgentFor returns the xAPI actor for a user, identified by mailbox.
func AgentFor(user User) Agent {
	return Agent{
		ObjectType: objectTypeAgent,
		Mbox:       "mailto:" + user.Email,
		Name:       user.Name,
	}
}

// ExperiencedStatement builds a statement saying that user went through the module and
// completed it successfully. The time spent is sent as an ISO 8601 duration.
func ExperiencedStatement(user User, module ModuleActivity, spent time.Duration, at time.Time) Statement {
	def := &ActivityDefinition{Type: ActivityTypeModule}
	if module.Title != "" {
		def.Name = LanguageMap{languageTag: module.Title}
	}
	if module.Description != "" {
		def.Description = LanguageMap{languageTag: module.Description}
	}
	return Statement{
		Actor: AgentFor(user),
		Verb: Verb{
			ID:      VerbExperienced,
			Display: LanguageMap{languageTag: "experienced"},
		},
		Object: Activity{
			ObjectType: objectTypeActivity,
			ID:         module.ID(),
			Definition: def,
		},
		Timestamp: at.UTC().Format(time.RFC3339),
		Result: &Result{
			Completion: true,
			Success:    true,
			Duration:   duration.Format(spent),
		},
	}
}
