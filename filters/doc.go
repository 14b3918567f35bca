// Package filters provides ready-made filters for common client-side
// concerns: request logging, request-id injection, bearer-token
// authentication, JSON response parsing, response caching, and
// OpenTelemetry tracing.
//
// These are ordinary instances of the filter.Filter contract, not engine
// infrastructure; use them as templates for writing your own.
//
//	p := pipeline.NewDefault(
//	    filters.BearerToken(src),          // nearest the sink
//	    filters.RequestID(),
//	    filters.RequestLogger(log),        // nearest the caller
//	)
package filters
