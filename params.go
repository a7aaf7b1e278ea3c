package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethicomply/lms-contract-tests/config"
	"github.com/ethicomply/lms-contract-tests/framework"
)

type commandParams struct {
	baseURL    string
	timeout    time.Duration
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	noColor    bool
	envFile    string
	envFileSet bool
}

func (c *commandParams) Read(args []string) bool {
	return c.read(args, os.Stderr)
}

func (c *commandParams) read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the LMS API (overrides LMS_BASE_URL)")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each request (overrides LMS_REQUEST_TIMEOUT)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select checks to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select checks not to run")
	fs.BoolVar(&c.debug, "debug", false, "show request and response details for failed checks")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show request and response details for all checks")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&c.envFile, "env-file", config.DefaultEnvFile, "file of environment variables to load if present")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	if c.timeout < 0 {
		fmt.Fprintln(errOut, "-timeout must not be negative")
		fs.Usage()
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "env-file" {
			c.envFileSet = true
		}
	})
	return true
}

// applyTo overrides cfg with whatever was given on the command line.
func (c *commandParams) applyTo(cfg *config.Config) error {
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.timeout > 0 {
		cfg.RequestTimeout = c.timeout
	}
	return cfg.Validate()
}
