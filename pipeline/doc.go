// Package pipeline composes filters and a sink into a single callable
// request pipeline.
//
// A pipeline is built by folding filters around a sink: the first filter
// argument sits nearest the sink (last to touch the outgoing request,
// first to see the response), the last nearest the caller. The entry
// point has the same shape as a sink, so a built pipeline can itself be
// used as the sink of another pipeline:
//
//	base := pipeline.NewDefault(filters.RequestLogger(log))
//	api := pipeline.New(base.Run, filters.BearerToken(src))
//
// # Invoking
//
// Run is the canonical typed entry point. Do and the verb helpers accept
// the loose call shapes (uri, opts, cb), (opts, cb), and (uri, cb) and
// normalize them; anything else fails synchronously with
// *InvalidArgumentsError:
//
//	p.Get("http://example.com/users", func(err error, result any, resp *filter.Response, body []byte) {
//	    ...
//	})
//
// Build and extend a pipeline fully before invoking it; Add concurrent
// with in-flight invocations leaves their filter set unspecified.
package pipeline
