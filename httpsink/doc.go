// Package httpsink provides the default network sink for filter
// pipelines: the terminal stage that performs the actual HTTP exchange.
//
// A Sink's Do method matches the filter.Next shape. It returns a duplex
// stream handle synchronously and completes the exchange on a background
// goroutine: response bytes flow through the handle's read side, and the
// callback fires exactly once with the classified error or the response
// metadata and buffered body. When Options.StreamBody is set, bytes
// written to the handle (ending with Close) become the request body.
//
// Transport-layer concerns live here, not in filters: TLS, timeouts,
// and resilience (retry for connection-level failures, circuit breaker,
// rate limiting).
//
//	sink, err := httpsink.New(httpsink.Config{
//	    Timeout: 10 * time.Second,
//	    Retry:   httpsink.DefaultRetryConfig(),
//	})
//	p := pipeline.New(sink.Do, myFilters...)
package httpsink
