package filters

import (
	"github.com/google/uuid"

	"github.com/kbukum/filterkit/filter"
)

// RequestIDHeader is the header carrying the per-request identifier.
const RequestIDHeader = "X-Request-Id"

// RequestID returns a filter that injects a unique X-Request-Id header
// into every request that does not already carry one.
func RequestID() filter.Filter {
	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		if opts.Headers[RequestIDHeader] == "" {
			opts.Headers[RequestIDHeader] = uuid.New().String()
		}
		return next(opts, cb)
	})
}

// Header returns a filter that sets a fixed request header.
func Header(key, value string) filter.Filter {
	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		opts.Headers[key] = value
		return next(opts, cb)
	})
}
