// Package checkout implements the Check Out Video use case.
//
// A checkout creates a new open rental for a (video, customer) pair if at least one copy of the
// video is available. The CommandHandler runs Load -> Decide -> Write inside one store
// transaction: the video row is locked first, so concurrent checkouts of the same video are
// serialized and the inventory can never be oversubscribed.
//
// Business rules live in the pure Decide function and are unit tested without a database.
package checkout
