// Package observability wires structured logging and Prometheus metrics.
//
// Logging uses zerolog's console writer installed as the global logger.
// Metrics cover the dispatcher (calls by status, retries, classified errors,
// round-trip latency) and the stub server's HTTP handler.
package observability
