// Package core contains the pure business rules of the video rental store.
//
// Nothing in this package performs I/O. It defines how available inventory is derived
// from a video and its rentals, the loan period rules, the error kinds shared by all
// features and the DecisionResult returned by the feature Decide functions.
package core
