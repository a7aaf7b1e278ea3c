// Package config loads the settings of a verification run from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultBaseURL is the API the verifier runs against unless told otherwise.
const DefaultBaseURL = "https://ethicomply.preview.emergentagent.com/api"

// DefaultEnvFile is loaded if it exists; a missing default file is not an error.
const DefaultEnvFile = ".env"

// Config holds everything a run needs to know.
type Config struct {
	BaseURL        string        `env:"LMS_BASE_URL" envDefault:"https://ethicomply.preview.emergentagent.com/api"`
	RequestTimeout time.Duration `env:"LMS_REQUEST_TIMEOUT" envDefault:"30s"`

	User       TestUser
	Quiz       Quiz
	Statements Statements
}

// TestUser describes the account that each run registers.
type TestUser struct {
	Name         string `env:"LMS_TEST_NAME" envDefault:"Sarah Johnson"`
	EmailDomain  string `env:"LMS_TEST_EMAIL_DOMAIN" envDefault:"ethicstest.com"`
	Password     string `env:"LMS_TEST_PASSWORD" envDefault:"SecurePass123!"`
	Organization string `env:"LMS_TEST_ORGANIZATION" envDefault:"Ethics Test Corp"`
}

// Quiz identifies the assessment module that the quiz check submits answers for.
type Quiz struct {
	CourseID string `env:"LMS_QUIZ_COURSE_ID" envDefault:"course-001"`
	ModuleID string `env:"LMS_QUIZ_MODULE_ID" envDefault:"module-001-05"`
}

// Statements configures the xAPI statement checks.
type Statements struct {
	// ActivityBaseURL is the site address that activity IDs are built from.
	ActivityBaseURL string `env:"LMS_ACTIVITY_BASE_URL" envDefault:"https://ethicomply.preview.emergentagent.com"`
	// Limit is sent as the limit parameter of the filtered statement query; 0 omits it.
	Limit int `env:"LMS_STATEMENT_LIMIT" envDefault:"10"`
}

// Load reads envFile into the process environment, without overriding variables that are
// already set, and then parses the environment. If required is false a missing envFile is
// ignored.
func Load(envFile string, required bool) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load env file %q: %w", envFile, err)
			}
		}
	}
	return Parse(nil)
}

// Parse builds a Config from environment variables. If environment is nil the process
// environment is used.
func Parse(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.User.Password == "" {
		return errors.New("test user password must not be empty")
	}
	if c.User.EmailDomain == "" {
		return errors.New("test user email domain must not be empty")
	}
	if c.Statements.Limit < 0 {
		return fmt.Errorf("statement limit must not be negative, got %d", c.Statements.Limit)
	}
	return nil
}
