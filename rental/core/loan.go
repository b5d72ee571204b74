package core

import "time"

// DefaultLoanPeriod is the time a customer may keep a video before it is overdue.
const DefaultLoanPeriod = 7 * 24 * time.Hour

// DueDate is the end of the loan period for a checkout at checkedOutAt.
func DueDate(checkedOutAt time.Time, loanPeriod time.Duration) time.Time {
	return checkedOutAt.Add(loanPeriod)
}
