// Package desk contains the core domain types for desk planning.
//
// It defines Person, Team and the DogStatus enumeration with its rank table,
// the constraint violation errors reported when a desk row is invalid, and a
// Factory that builds people with sequential identifiers for fixtures.
package desk
