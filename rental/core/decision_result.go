package core

import (
	"github.com/AntonStoeckl/videorental/store"
)

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods
// SuccessDecision(rental, inventory) or ErrorDecision(inventory, err).
type DecisionResult struct {
	Outcome string

	// Rental is the rental to write: a new open rental for a checkout, the closed rental for a checkin.
	Rental store.Rental

	// Inventory is the availability after the decision is applied, or as observed when it failed.
	Inventory Inventory

	Err error
}

const (
	successOutcome = "success"
	errorOutcome   = "error"
)

// SuccessDecision creates a DecisionResult with a rental to write.
func SuccessDecision(rental store.Rental, inventory Inventory) DecisionResult {
	return DecisionResult{
		Outcome:   successOutcome,
		Rental:    rental,
		Inventory: inventory,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(inventory Inventory, err error) DecisionResult {
	return DecisionResult{
		Outcome:   errorOutcome,
		Inventory: inventory,
		Err:       err,
	}
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
