// Package validate implements the per-section business-rule checks for the
// SF-86 form data. Rule violations are reported as strings, never as Go
// errors: errors block form completion, warnings are advisory. Validators
// never mutate their input and tolerate arbitrarily incomplete trees.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clearform/sf86-filler/internal/form"
	"github.com/clearform/sf86-filler/internal/mapping"
)

// Result is one validation pass's outcome. IsValid is false exactly when
// Errors is non-empty; Warnings never block completion.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// StatsResult augments a Result with the coverage counters some section
// validators report alongside their rule checks.
type StatsResult struct {
	Result
	Total  int `json:"total"`
	Mapped int `json:"mapped"`
}

const maxNameLength = 50

var namePattern = regexp.MustCompile(`^[a-zA-Z\s\-'.]*$`)
var ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

// checker accumulates rule violations against one section's flattened tree.
type checker struct {
	flat     map[string]any
	errors   []string
	warnings []string
}

func newChecker(sectionKey string, data form.Data) *checker {
	c := &checker{}
	if data.HasSection(sectionKey) {
		c.flat = mapping.Flatten(sectionKey, data.Section(sectionKey))
	} else {
		c.flat = map[string]any{}
	}
	return c
}

func (c *checker) result() Result {
	r := Result{
		IsValid:  len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
	if r.Errors == nil {
		r.Errors = make([]string, 0)
	}
	if r.Warnings == nil {
		r.Warnings = make([]string, 0)
	}
	return r
}

func (c *checker) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *checker) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// str returns the trimmed string form of the value at path, or "" when the
// path is absent or holds a non-string.
func (c *checker) str(path string) string {
	v, ok := c.flat[path]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (c *checker) has(path string) bool {
	_, ok := c.flat[path]
	return ok
}

// yes reports whether the flag at path is affirmative ("YES", true).
func (c *checker) yes(path string) bool {
	switch v := c.flat[path].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "YES")
	}
	return false
}

// entryCount returns how many array entries exist under prefix, counting
// contiguous indices from zero.
func (c *checker) entryCount(prefix string) int {
	count := 0
	for {
		probe := fmt.Sprintf("%s[%d]", prefix, count)
		found := false
		for path := range c.flat {
			if strings.HasPrefix(path, probe) {
				found = true
				break
			}
		}
		if !found {
			return count
		}
		count++
	}
}

// requireString records an error when the named field is empty.
func (c *checker) requireString(path, label string) {
	if c.str(path) == "" {
		c.errorf("%s is required", label)
	}
}

// requireFlag records an error when a Yes/No question was not answered.
func (c *checker) requireFlag(path, label string) {
	if !c.has(path) {
		c.errorf("%s must be answered", label)
	}
}

// checkName enforces the length and character-class rules shared by all
// name-like free-text fields.
func (c *checker) checkName(path, label string) {
	s := c.str(path)
	if s == "" {
		return
	}
	if len(s) > maxNameLength {
		c.errorf("%s must be %d characters or fewer", label, maxNameLength)
	}
	if !namePattern.MatchString(s) {
		c.errorf("%s contains invalid characters", label)
	}
}
