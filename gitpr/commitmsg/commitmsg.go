package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
)

// Suggestion is one commit type with an example
// subject.
type Suggestion struct {
	Type    string
	Example string
}

// String returns "type: Example".
func (s Suggestion) String() string {
	return s.Type + ": " + s.Example
}

// Suggestions lists the commit types in menu order.
var Suggestions = []Suggestion{
	{Type: "feat", Example: "Add new feature"},
	{Type: "fix", Example: "Resolve bug"},
	{Type: "docs", Example: "Update documentation"},
	{Type: "refactor", Example: "Refactor code"},
	{Type: "style", Example: "Apply code style"},
	{Type: "test", Example: "Add or update tests"},
	{Type: "chore", Example: "Minor changes"},
}

// header matches "type(scope)!: subject".
var header = regexp.MustCompile(
	`^([a-z]+)(?:\([^()]*\))?!?: \S`,
)

// Menu renders Suggestions as a numbered list.
func Menu() string {
	var sb strings.Builder

	sb.WriteString("\nSuggested commit message types:\n")

	for i, s := range Suggestions {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, s)
	}

	return sb.String()
}

// Type returns the commit type of msg when its first
// line starts with one of the Suggestions types, and
// empty string otherwise.
func Type(msg string) string {
	m := header.FindStringSubmatch(Subject(msg))
	if m == nil {
		return ""
	}

	for _, s := range Suggestions {
		if s.Type == m[1] {
			return m[1]
		}
	}

	return ""
}

// Conventional reports whether msg follows one of the
// suggested types.
func Conventional(msg string) bool {
	return Type(msg) != ""
}

// Subject returns the first line of msg.
func Subject(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")

	return strings.TrimSpace(line)
}
