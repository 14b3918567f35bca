package filter

import "io"

// Stream is the duplex handle returned synchronously from a pipeline
// invocation. The write side carries the outgoing request body, the read
// side carries the incoming response body. Close signals that no more
// local writes will occur.
type Stream interface {
	io.ReadWriteCloser
}

// Callback receives the outcome of an exchange. err and a completed
// response are mutually exclusive in the steady state: err non-nil means
// the exchange failed, otherwise resp and body describe the response.
// result carries a filter-produced convenience value (for example a
// decoded JSON body) and is nil unless some filter set it.
type Callback func(err error, result any, resp *Response, body []byte)

// Next is the continuation handed to a filter: everything between the
// filter and the sink, shaped exactly like a pipeline entry point. A sink
// is any function of this shape, which is what allows a built pipeline to
// serve as another pipeline's sink.
type Next func(opts *Options, cb Callback) Stream

// Filter is a composable request/response interceptor.
//
// Contract: a filter calls next at most once. It either calls next
// (optionally with a wrapped callback) or, when short-circuiting, calls
// cb directly and never calls next. It may return next's stream
// unchanged, or substitute its own (typically a stream.Interim handle
// when asynchronous setup must happen before next can run). Violations
// of this contract are not detected; they surface as double callback
// invocations or hung responses.
//
// Filters must be reentrant: the engine holds no per-filter state, and a
// pipeline may be invoked concurrently. Per-invocation state belongs in
// locals or in the wrapped callback's closure, never in the filter value.
type Filter interface {
	Apply(opts *Options, next Next, cb Callback) Stream
}

// Func adapts a plain function to the Filter interface.
type Func func(opts *Options, next Next, cb Callback) Stream

// Apply implements Filter.
func (f Func) Apply(opts *Options, next Next, cb Callback) Stream {
	return f(opts, next, cb)
}

// Fold wraps sink with the given filters and returns the resulting entry
// point. Filters are folded left to right: the first filter ends up
// nearest the sink (last to touch the outgoing request, first to see the
// response), the last filter nearest the caller.
func Fold(sink Next, filters ...Filter) Next {
	entry := sink
	for _, f := range filters {
		if f == nil {
			panic("filter: nil filter passed to Fold")
		}
		f, inner := f, entry
		entry = func(opts *Options, cb Callback) Stream {
			return f.Apply(opts, inner, cb)
		}
	}
	return entry
}
