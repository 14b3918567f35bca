package filters

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/stream"
)

type cacheEntry struct {
	result  any
	resp    filter.Response
	body    []byte
	expires time.Time
}

// Cache returns a filter that serves successful GET responses from an
// in-memory cache for ttl. On a hit it short-circuits: the callback
// fires with the cached values, the returned stream replays the cached
// body, and the rest of the chain never runs. On a miss it wraps the
// callback to populate the cache.
//
// Entries are keyed by URI alone. The cache assumes a single-principal
// client: requests to the same URI under different credentials or
// content negotiation headers share one entry. Build a separate
// pipeline (or a separate Cache instance) per principal when that
// matters.
func Cache(ttl time.Duration) filter.Filter {
	var mu sync.Mutex
	entries := make(map[string]cacheEntry)

	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		if opts.Method != "" && opts.Method != http.MethodGet {
			return next(opts, cb)
		}
		key := opts.URI

		mu.Lock()
		e, hit := entries[key]
		if hit && time.Now().After(e.expires) {
			delete(entries, key)
			hit = false
		}
		mu.Unlock()

		if hit {
			resp := filter.Response{
				StatusCode: e.resp.StatusCode,
				Headers:    cloneHeaders(e.resp.Headers),
			}
			h := stream.Interim(func(req *stream.RequestHalf, body *stream.ResponseHalf) {
				_ = req.Splice(io.Discard)
				_ = body.Splice(bytes.NewReader(e.body))
			})
			cb(nil, e.result, &resp, e.body)
			return h
		}

		return next(opts, func(err error, result any, resp *filter.Response, body []byte) {
			if err == nil && resp != nil && resp.IsSuccess() {
				mu.Lock()
				entries[key] = cacheEntry{
					result: result,
					resp: filter.Response{
						StatusCode: resp.StatusCode,
						Headers:    cloneHeaders(resp.Headers),
					},
					body:    append([]byte(nil), body...),
					expires: time.Now().Add(ttl),
				}
				mu.Unlock()
			}
			cb(err, result, resp, body)
		})
	})
}

func cloneHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
