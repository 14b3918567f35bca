// Package resilience provides the fault-tolerance patterns consumed by
// the httpsink: retry with exponential backoff, circuit breaker, and
// token bucket rate limiting. These are transport concerns and are
// wired into the sink's configuration, not exposed as filters.
package resilience
