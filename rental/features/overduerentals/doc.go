// Package overduerentals implements the read-side query listing open rentals past their due date.
//
// Every row is joined with the title of the video and the name and postal code of the customer,
// so a clerk can call the customer without further lookups.
package overduerentals
