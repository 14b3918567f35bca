// Package filter defines the client-side request/response filter contract
// and the types threaded through a filter chain.
//
// A Filter wraps a single outbound exchange: it may rewrite the outgoing
// Options, intercept the response by handing the continuation a wrapped
// Callback, or both. Filters compose into pipelines (see the pipeline
// package) terminating in a sink that performs the actual network call.
//
// # Writing a filter
//
//	addHeader := filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
//	    opts.Headers["X-Tenant"] = "acme"
//	    return next(opts, cb)
//	})
//
// A filter that needs to observe the response wraps the callback:
//
//	timed := filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
//	    start := time.Now()
//	    return next(opts, func(err error, result any, resp *filter.Response, body []byte) {
//	        log.Printf("%s %s took %s", opts.Method, opts.URI, time.Since(start))
//	        cb(err, result, resp, body)
//	    })
//	})
package filter
