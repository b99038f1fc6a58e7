// Package interpreter answers semantic queries over a parsed feature model.
//
// Every query is built on one traversal primitive, GetPhysicalSubfeatures,
// which resolves a feature id (or a slot sentinel) to the physical features
// reachable beneath it. Free placement, directional slot compatibility and
// mandatory-feature satisfaction all reuse it.
//
// # Slot resolution
//
// Slot lists on feature metadata hold feature ids plus two sentinels:
//
//	-1  featuremodel.Forbidden    nothing may be placed in this direction
//	 0  featuremodel.AnyPhysical  any physical feature may be placed
//
// Any other id names a subtree whose physical leaves are allowed. Results
// from several ids are merged in first-seen order with duplicates removed.
//
// # Usage
//
//	interp := interpreter.New(model)
//	candidates, err := interp.GetAllowedRight(10)
//
// An Interpreter holds no mutable state besides an optional Observer and is
// safe for concurrent use once constructed.
package interpreter
