// Package configuration holds the state of one product configuration: the
// placed feature instances in placement order, their neighbour links, the
// applied material and the price ceiling.
//
// A State is created empty per session and only grows. Validation reads it
// and sets invalid marks on instances; it never adds or removes instances.
//
// # Price ceiling
//
// The ceiling uses a sentinel: any value <= -1 is stored as Unlimited and
// disables the price check. Positive values are active limits. Zero and
// values between -1 and 0 are rejected with ErrInvalidPriceLimit.
//
// State is not safe for concurrent use; it is mutated by discrete user
// actions from a single goroutine.
package configuration
