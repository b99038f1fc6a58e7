// Package validation evaluates a configuration against the constraints of
// its feature model and produces a report.
//
// The Engine runs five checks in a fixed order, always to completion:
//
//  1. Mandatory: every mandatory feature has a placed physical descendant.
//  2. XOR: at most one child subtree of an XOR feature is represented.
//  3. Requires: every requirement of a placed feature is placed too.
//  4. Excludes: no two placed features exclude each other.
//  5. Price: the running total does not exceed the ceiling.
//
// Besides the report, the engine marks offending instances invalid so a
// renderer can highlight them. It only ever sets marks; callers that
// validate repeatedly clear them first with State.ResetMarks.
//
// For an XOR feature with three or more represented children, only the
// first two are named and marked.
//
// Structural problems, such as a requirement naming an id that is not in
// the model, are returned as errors instead of violations.
package validation
