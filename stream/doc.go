// Package stream provides the deferred stream splicing mechanism used by
// filters that must perform asynchronous setup before the real
// request/response stream exists.
//
// Interim returns a duplex handle immediately. Writes to the handle are
// buffered until the request half is spliced onto the real destination;
// reads block until the response half is spliced onto the real source.
// From the caller's perspective, the latency before the real connection
// exists is invisible except as buffering on the handle.
//
// Typical use inside a filter:
//
//	return stream.Interim(func(req *stream.RequestHalf, resp *stream.ResponseHalf) {
//	    go func() {
//	        token, err := fetchCredential()
//	        if err != nil {
//	            resp.Fail(err)
//	            cb(err, nil, nil, nil)
//	            return
//	        }
//	        opts.Headers["Authorization"] = "Bearer " + token
//	        real := next(opts, cb)
//	        req.Splice(real)
//	        resp.Splice(real)
//	    }()
//	})
//
// Each half must be spliced exactly once. There is no built-in timeout:
// if the asynchronous step never completes, the handle stays open with
// buffered, unflushed writes.
package stream
