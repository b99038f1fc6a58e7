package lint

import (
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

// Linter orchestrates the structural, reference and semantic passes.
type Linter struct {
	strict bool // Warnings count as errors
}

// NewLinter creates a linter with default settings.
func NewLinter() *Linter {
	return &Linter{}
}

// WithStrictMode makes warnings blocking.
func (l *Linter) WithStrictMode(strict bool) *Linter {
	l.strict = strict
	return l
}

// Lint runs all passes over model and returns every issue found.
func (l *Linter) Lint(model *featuremodel.Model) *IssueList {
	issues := NewIssueList()
	issues.strict = l.strict

	pass := &checker{model: model, issues: issues}

	model.Walk(func(f *featuremodel.Feature) bool {
		pass.checkStructure(f)
		pass.checkReferences(f)
		return true
	})

	// Semantic checks resolve subtrees and would cascade on broken structure.
	if issues.HasIssueType(IssueTypeStructural) || issues.HasIssueType(IssueTypeReference) {
		return issues
	}

	pass.interp = interpreter.New(model)
	model.Walk(func(f *featuremodel.Feature) bool {
		pass.checkSemantics(f)
		return true
	})

	return issues
}

// checker carries shared state for one lint run.
type checker struct {
	model  *featuremodel.Model
	interp *interpreter.Interpreter
	issues *IssueList
}

func (c *checker) errorf(t IssueType, f *featuremodel.Feature, msg, suggestion string) {
	c.issues.Add(&Issue{
		Type:        t,
		Severity:    SeverityError,
		FeatureID:   f.ID,
		FeatureName: f.Name,
		Message:     msg,
		Suggestion:  suggestion,
	})
}

func (c *checker) warnf(t IssueType, f *featuremodel.Feature, msg, suggestion string) {
	c.issues.Add(&Issue{
		Type:        t,
		Severity:    SeverityWarning,
		FeatureID:   f.ID,
		FeatureName: f.Name,
		Message:     msg,
		Suggestion:  suggestion,
	})
}
