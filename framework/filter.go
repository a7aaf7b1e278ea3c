package framework

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Filter decides whether a check runs.
type Filter func(TestID) bool

// RegexFilters are the -run and -skip patterns. A check runs if its name matches at least one
// MustMatch pattern, when there are any, and none of the MustNotMatch patterns.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) Includes(name string) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.AnyMatch(name) {
		return false
	}
	return !r.MustNotMatch.AnyMatch(name)
}

// AsFilter has the signature of Filter.
func (r RegexFilters) AsFilter(id TestID) bool {
	return r.Includes(id.String())
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

// RegexList is a flag.Value that collects one pattern per use of the flag.
type RegexList []*regexp.Regexp

func (r RegexList) String() string {
	quoted := make([]string, 0, len(r))
	for _, p := range r {
		quoted = append(quoted, strconv.Quote(p.String()))
	}
	return strings.Join(quoted, " or ")
}

func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", value, err)
	}
	*r = append(*r, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r) > 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains which checks the filters will skip. Checks named in
// alwaysRun ignore the filters, so they are listed too.
func PrintFilterDescription(out io.Writer, filters RegexFilters, alwaysRun []string) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some checks will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	if len(alwaysRun) > 0 {
		fmt.Fprintf(out, "  (always run: %s)\n", strings.Join(alwaysRun, ", "))
	}
	fmt.Fprintln(out)
}
