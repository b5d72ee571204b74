// Package oteladapters provides OpenTelemetry implementations of the store and rental shell
// observability interfaces.
//
// MetricsCollector maps duration, counter and value calls onto OpenTelemetry instruments created
// on demand. SlogBridgeLogger routes contextual log calls through the otelslog bridge.
// Snapshot flattens what a ManualReader collected into plain points, which the HTTP API serves
// on its metrics endpoint.
package oteladapters
