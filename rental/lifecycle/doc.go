// Package lifecycle is the entry point to the rental lifecycle for outer layers like the HTTP API.
//
// A Manager wires the checkout and checkin command handlers and the read-side query handlers,
// wraps each of them with the observable decorators and supplies the current time.
// Callers only pass ids, the Manager builds the commands and queries.
package lifecycle
