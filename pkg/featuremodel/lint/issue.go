package lint

import (
	"fmt"
	"strings"
)

// IssueType categorizes a lint finding.
type IssueType string

const (
	IssueTypeStructural IssueType = "structural" // Shape of a single feature
	IssueTypeReference  IssueType = "reference"  // Dangling feature id
	IssueTypeSemantic   IssueType = "semantic"   // Inconsistent constraints
)

// Severity tells whether an issue blocks using the model.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single lint finding attached to a feature.
type Issue struct {
	Type        IssueType
	Severity    Severity
	FeatureID   int64
	FeatureName string
	Message     string
	Suggestion  string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] feature %d %q: %s\n", i.Type, i.FeatureID, i.FeatureName, i.Message))
	if i.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", i.Suggestion))
	}

	return sb.String()
}

// IssueList accumulates issues instead of failing on the first one.
type IssueList struct {
	Issues []*Issue
	strict bool
}

// NewIssueList creates a new empty issue list.
func NewIssueList() *IssueList {
	return &IssueList{
		Issues: make([]*Issue, 0),
	}
}

// Add appends an issue to the list.
func (l *IssueList) Add(issue *Issue) {
	l.Issues = append(l.Issues, issue)
}

// Append appends all issues of other.
func (l *IssueList) Append(other *IssueList) {
	l.Issues = append(l.Issues, other.Issues...)
}

// Count returns the number of issues in the list.
func (l *IssueList) Count() int {
	return len(l.Issues)
}

// Errors returns the issues that block the model. In strict mode warnings
// are included.
func (l *IssueList) Errors() []*Issue {
	var result []*Issue
	for _, issue := range l.Issues {
		if issue.Severity == SeverityError || l.strict {
			result = append(result, issue)
		}
	}
	return result
}

// Warnings returns the warning-severity issues.
func (l *IssueList) Warnings() []*Issue {
	var result []*Issue
	for _, issue := range l.Issues {
		if issue.Severity == SeverityWarning {
			result = append(result, issue)
		}
	}
	return result
}

// HasErrors returns true if the list contains blocking issues.
func (l *IssueList) HasErrors() bool {
	return len(l.Errors()) > 0
}

// HasIssueType returns true if the list contains at least one error of the given type.
func (l *IssueList) HasIssueType(issueType IssueType) bool {
	for _, issue := range l.Issues {
		if issue.Type == issueType && issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByType returns all issues of the given type.
func (l *IssueList) ByType(issueType IssueType) []*Issue {
	var result []*Issue
	for _, issue := range l.Issues {
		if issue.Type == issueType {
			result = append(result, issue)
		}
	}
	return result
}

// Error implements the error interface.
func (l *IssueList) Error() string {
	if l.Count() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issue(s):\n\n", l.Count()))
	for i, issue := range l.Issues {
		sb.WriteString(fmt.Sprintf("Issue %d (%s):\n", i+1, issue.Severity))
		sb.WriteString(issue.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil if the list holds no blocking issues, otherwise the
// list itself.
func (l *IssueList) ToError() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}
