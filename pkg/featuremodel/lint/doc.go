// Package lint checks a parsed feature model for problems that the parser
// accepts but that make the model unreliable at configuration time.
//
// The linter runs three passes:
//
//  1. Structural: physical features are leaves, metadata is present iff a
//     feature is physical, material data iff it is a material, and slot lists
//     use the Forbidden / AnyPhysical sentinels correctly.
//  2. Reference: every id named in a slot list or dependency exists.
//  3. Semantic: dependency consistency (self references, asymmetric
//     excludes, requires and excludes naming the same feature), XOR groups
//     with fewer than two alternatives, mandatory features with nothing
//     placeable below them.
//
// The semantic pass only runs when the structural pass found no errors, to
// avoid cascading reports.
//
// # Usage
//
//	issues := lint.NewLinter().Lint(model)
//	for _, issue := range issues.Issues {
//	    fmt.Println(issue.Error())
//	}
//	if err := issues.ToError(); err != nil {
//	    return err
//	}
//
// Issues print as:
//
//	[reference] feature 11 "Frame Large": left slot references unknown feature 132
//	  = suggestion: Did you mean feature 13 ("Hinged Door")?
package lint
