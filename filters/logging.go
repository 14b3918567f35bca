package filters

import (
	"time"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/logger"
)

// RequestLogger returns a filter that logs every exchange with method,
// URI, status, and duration. Failures log at error level, 4xx/5xx at
// warn, everything else at info.
func RequestLogger(log *logger.Logger) filter.Filter {
	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		start := time.Now()
		return next(opts, func(err error, result any, resp *filter.Response, body []byte) {
			fields := logger.Fields(
				logger.FieldMethod, opts.Method,
				logger.FieldURI, opts.URI,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			if resp != nil {
				fields[logger.FieldStatus] = resp.StatusCode
			}
			if id := opts.Headers[RequestIDHeader]; id != "" {
				fields[logger.FieldRequestID] = id
			}

			switch {
			case err != nil:
				log.WithError(err).Error("request failed", fields)
			case resp != nil && resp.IsError():
				log.Warn("request completed", fields)
			default:
				log.Info("request completed", fields)
			}
			cb(err, result, resp, body)
		})
	})
}
