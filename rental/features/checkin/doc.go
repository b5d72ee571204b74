// Package checkin implements the Check In Video use case.
//
// A checkin closes one open rental of a (video, customer) pair. If the customer holds several
// copies of the same video, the rental checked out first is closed (ties broken by rental id).
// The CommandHandler locks the video and the candidate rentals inside one transaction, so two
// concurrent checkins can never close the same rental twice.
package checkin
