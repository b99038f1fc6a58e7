package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel/lint"
)

var lintFlags struct {
	model  string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a feature model for mistakes",
	Long: `Parse a feature model and report structural, reference and semantic issues.

  - Structural: metadata and material data match the feature kind, slot lists
    are well formed, prices are not negative
  - Reference: every slot entry and dependency names an existing feature
  - Semantic: dependencies are consistent, groups can be satisfied

Examples:
  # Lint a model
  configurator lint --model wardrobe.json

  # Strict mode (warnings as errors)
  configurator lint --model wardrobe.json --strict

  # JSON output for CI/CD
  configurator lint --model wardrobe.json --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.model, "model", "m", "", "feature model file (default: model.path)")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors (default: model.strict_lint)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the outcome of linting one model file.
type LintResult struct {
	File     string      `json:"file"`
	Model    string      `json:"model"`
	Valid    bool        `json:"valid"`
	Errors   []LintIssue `json:"errors,omitempty"`
	Warnings []LintIssue `json:"warnings,omitempty"`
}

// LintIssue is a single lint finding.
type LintIssue struct {
	FeatureID  int64  `json:"feature_id"`
	Feature    string `json:"feature"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// WriteText prints the result in human-readable form.
func (r *LintResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Linting %s (%s)...\n", r.File, r.Model)
	for _, issue := range r.Errors {
		writeIssue(w, "✗ Error", issue)
	}
	for _, issue := range r.Warnings {
		writeIssue(w, "⚠ Warning", issue)
	}

	var err error
	if r.Valid {
		_, err = fmt.Fprintf(w, "✓ Model is valid (%d warning(s))\n", len(r.Warnings))
	} else {
		_, err = fmt.Fprintf(w, "✗ %d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
	}
	return err
}

func writeIssue(w io.Writer, label string, issue LintIssue) {
	fmt.Fprintf(w, "%s: feature %d %q: %s [%s]\n", label, issue.FeatureID, issue.Feature, issue.Message, issue.Type)
	if issue.Suggestion != "" {
		fmt.Fprintf(w, "  suggestion: %s\n", issue.Suggestion)
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	out, err := formatter(lintFlags.format)
	if err != nil {
		return err
	}

	path, err := modelPath(lintFlags.model, cfg)
	if err != nil {
		return err
	}
	model, err := newParser(cfg).ParseFile(path)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	strict := lintFlags.strict || cfg.Model.StrictLint
	issues := lint.NewLinter().WithStrictMode(strict).Lint(model)

	result := buildLintResult(path, model.Name, issues, strict)
	if err := out.FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if !result.Valid {
		return cli.ErrInvalid
	}
	return nil
}

func buildLintResult(file, model string, issues *lint.IssueList, strict bool) *LintResult {
	result := &LintResult{File: file, Model: model}
	for _, issue := range issues.Errors() {
		result.Errors = append(result.Errors, toLintIssue(issue))
	}
	if !strict {
		for _, issue := range issues.Warnings() {
			result.Warnings = append(result.Warnings, toLintIssue(issue))
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func toLintIssue(issue *lint.Issue) LintIssue {
	return LintIssue{
		FeatureID:  issue.FeatureID,
		Feature:    issue.FeatureName,
		Type:       string(issue.Type),
		Message:    issue.Message,
		Suggestion: issue.Suggestion,
	}
}
