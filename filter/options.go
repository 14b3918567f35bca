package filter

// Options carries the mutable request options for one pipeline
// invocation. It is passed by pointer through the whole chain; any filter
// may mutate it in place, and mutations are visible to every filter that
// runs closer to the sink. No filter may assume it is the sole mutator.
type Options struct {
	// URI is the target address of the request.
	URI string
	// Method is the request method (GET, POST, ...). The sink defaults
	// it to GET when empty.
	Method string
	// Headers are the outgoing request headers. Never nil after
	// normalization.
	Headers map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or
	// any value the sink will JSON-encode.
	Body any
	// StreamBody, when true and Body is nil, makes the returned
	// stream's write side feed the request body: write, then Close to
	// end the request.
	StreamBody bool
	// Values holds arbitrary extra options. The engine threads them
	// through the chain unchanged; only filters interpret them.
	Values map[string]any
}

// NewOptions returns Options targeting uri with an empty header map.
func NewOptions(uri string) *Options {
	return &Options{URI: uri, Headers: make(map[string]string)}
}

// Response is the raw response metadata delivered to callbacks.
type Response struct {
	// StatusCode is the protocol status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
