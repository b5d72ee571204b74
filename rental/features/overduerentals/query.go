package overduerentals

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/videorental/rental/core"
)

const queryType = "OverdueRentals"

// Query asks for all rentals that are still checked out and due before AsOf.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: asOf}
}

// QueryType returns the query type name.
func (q Query) QueryType() string {
	return queryType
}

// Validate reports a zero reference time as core.ErrValidation.
func (q Query) Validate() error {
	if q.AsOf.IsZero() {
		return fmt.Errorf("%w: as_of is required", core.ErrValidation)
	}

	return nil
}
