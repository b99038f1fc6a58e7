// Package featuremodel holds the in-memory representation of a product
// feature model.
//
// A feature model is a tree of features rooted at the feature with ID 1.
// Leaves marked as physical correspond to placeable parts and carry
// Metadata (brand, 3D model reference, price and the three directional slot
// lists). Material features carry MaterialData (texture and price).
//
// # Parsing
//
// Models are loaded from the JSON document produced by the modeling tool:
//
//	p := featuremodel.NewParser()
//	model, err := p.ParseFile("featuremodel.json")
//	if err != nil {
//	    var perr *featuremodel.ParseError
//	    if errors.As(err, &perr) {
//	        log.Fatalf("invalid feature model: %v", perr)
//	    }
//	}
//
// Parsing is all-or-nothing: malformed JSON, a missing or non-integer id,
// a duplicate id, or anything other than a single root subtree fails the
// whole load.
//
// # Index
//
// After the tree is decoded, a single breadth-first pass assigns ParentID to
// every non-root feature and builds a flat id index. The index does not own
// features; the tree does. A Model is immutable after parsing and may be
// shared between goroutines without locking.
//
//	f, err := model.Lookup(42)
//	if errors.Is(err, featuremodel.ErrNotFound) {
//	    // referential integrity problem in the model
//	}
package featuremodel
