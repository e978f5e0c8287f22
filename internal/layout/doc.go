// Package layout seats people along a single row of adjacent desks.
//
// CheckOrder is the evaluator: it rejects rows that split a team or seat a
// person avoiding dogs directly next to a dog owner, and otherwise scores how
// far avoiders sit from owners and how far owners sit from each other.
// Higher scores are better.
//
// CalculateDeskLayout and Arranger produce rows that keep teams together and
// maximize that score among the candidates they consider.
package layout
