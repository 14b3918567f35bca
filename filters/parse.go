package filters

import (
	"encoding/json"
	"strings"

	"github.com/kbukum/filterkit/filter"
)

// ParseJSON returns a filter that decodes successful JSON response
// bodies and delivers the decoded value as the callback's result. The
// raw body still arrives unchanged; a body that fails to decode is
// passed through with a nil result.
func ParseJSON() filter.Filter {
	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		return next(opts, func(err error, result any, resp *filter.Response, body []byte) {
			if err == nil && result == nil && len(body) > 0 && isJSON(resp) {
				var v any
				if jerr := json.Unmarshal(body, &v); jerr == nil {
					result = v
				}
			}
			cb(err, result, resp, body)
		})
	})
}

func isJSON(resp *filter.Response) bool {
	if resp == nil {
		return false
	}
	return strings.Contains(resp.Headers["Content-Type"], "application/json")
}
