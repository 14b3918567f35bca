package httpsink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/logger"
	"github.com/kbukum/filterkit/resilience"
	"github.com/kbukum/filterkit/stream"
)

// Sink performs HTTP exchanges for filter pipelines. Its Do method
// satisfies the sink contract: it returns a stream handle synchronously
// and eventually invokes the callback exactly once.
type Sink struct {
	client *http.Client
	cfg    Config
	cb     *resilience.CircuitBreaker
	rl     *resilience.RateLimiter
	log    *logger.Logger
}

// New creates a sink with the given configuration.
func New(cfg Config) (*Sink, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	s := &Sink{
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    logger.GetGlobalLogger().WithComponent("httpsink"),
	}
	if cfg.CircuitBreaker != nil {
		s.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		s.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return s, nil
}

var (
	defaultOnce sync.Once
	defaultSink *Sink
)

// Default returns the shared zero-config sink used by pipeline.NewDefault.
func Default() *Sink {
	defaultOnce.Do(func() {
		defaultSink, _ = New(Config{})
	})
	return defaultSink
}

// Do executes the exchange described by opts. It returns a duplex handle
// immediately and runs the exchange on a background goroutine. cb is
// invoked exactly once, with either a classified error or the response
// metadata and fully buffered body.
func (s *Sink) Do(opts *filter.Options, cb filter.Callback) filter.Stream {
	if cb == nil {
		cb = func(error, any, *filter.Response, []byte) {}
	}
	return stream.Interim(func(req *stream.RequestHalf, resp *stream.ResponseHalf) {
		go s.exchange(opts, cb, req, resp)
	})
}

// exchange runs one request/response cycle. It owns the single callback
// invocation for this handle.
func (s *Sink) exchange(opts *filter.Options, cb filter.Callback, req *stream.RequestHalf, resp *stream.ResponseHalf) {
	ctx := context.Background()
	start := time.Now()

	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	if s.rl != nil {
		if err := s.rl.Wait(ctx); err != nil {
			_ = req.Splice(io.Discard)
			s.fail(cb, resp, NewConnectionError(err))
			return
		}
	}

	// Wire the request body. Three cases: an explicit Body on the
	// options, a streamed body fed through the handle's write side, or
	// no body at all.
	var bodyPipe *io.PipeReader
	streamed := false
	switch {
	case opts.Body != nil:
		if _, _, err := encodeBody(opts.Body); err != nil {
			_ = req.Splice(io.Discard)
			s.fail(cb, resp, NewValidationError(fmt.Sprintf("encode body: %v", err)))
			return
		}
		_ = req.Splice(io.Discard)
	case opts.StreamBody && methodAllowsBody(opts.Method):
		pr, pw := io.Pipe()
		bodyPipe = pr
		streamed = true
		// Splice concurrently: flushing buffered writes into the pipe
		// blocks until the transport starts reading it.
		go func() { _ = req.Splice(pw) }()
	default:
		_ = req.Splice(io.Discard)
	}

	// Avoid a typed-nil io.Reader: a nil *io.PipeReader stored in the
	// interface would be treated as a real body by net/http.
	var streamReader io.Reader
	if bodyPipe != nil {
		streamReader = bodyPipe
	}
	send := func() (*http.Response, error) {
		return s.send(ctx, opts, streamReader)
	}
	if s.cb != nil {
		inner := send
		send = func() (*http.Response, error) {
			var r *http.Response
			err := s.cb.Execute(func() error {
				var execErr error
				r, execErr = inner()
				return execErr
			})
			return r, err
		}
	}

	var httpResp *http.Response
	var err error
	if s.cfg.Retry != nil && !streamed && replayable(opts.Body) {
		httpResp, err = resilience.Retry(ctx, *s.cfg.Retry, send)
	} else {
		httpResp, err = send()
	}
	if err != nil {
		if streamed {
			bodyPipe.CloseWithError(err)
		}
		s.fail(cb, resp, err)
		return
	}
	defer func() { _ = httpResp.Body.Close() }()

	meta := &filter.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    flattenHeaders(httpResp.Header),
	}

	// Stream response bytes through the handle while buffering them for
	// the callback. ResponseHalf writes never block on a slow reader.
	data, readErr := io.ReadAll(io.TeeReader(httpResp.Body, resp))
	if readErr != nil {
		rerr := NewConnectionError(fmt.Errorf("read response body: %w", readErr))
		resp.Fail(rerr)
		cb(rerr, nil, meta, nil)
		return
	}
	_ = resp.Close()

	s.log.Debug("exchange complete", logger.Fields(
		"method", opts.Method,
		"uri", opts.URI,
		"status", meta.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	))

	var cbErr error
	if classErr := ClassifyStatusCode(meta.StatusCode); classErr != nil {
		cbErr = classErr
	}
	cb(cbErr, nil, meta, data)
}

// send builds and performs a single attempt. The body is re-encoded per
// attempt so retries replay it from the original value.
func (s *Sink) send(ctx context.Context, opts *filter.Options, streamedBody io.Reader) (*http.Response, error) {
	var body io.Reader
	var contentType string
	if streamedBody != nil {
		body = streamedBody
	} else if opts.Body != nil {
		var err error
		body, contentType, err = encodeBody(opts.Body)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, opts.Method, opts.URI, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	for k, v := range s.cfg.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	return resp, nil
}

// fail delivers err through the callback and tears down the handle's
// read side.
func (s *Sink) fail(cb filter.Callback, resp *stream.ResponseHalf, err error) {
	s.log.WithError(err).Debug("exchange failed")
	resp.Fail(err)
	cb(err, nil, nil, nil)
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// replayable reports whether the body can be re-encoded for a retry.
// io.Reader bodies are consumed by the first attempt.
func replayable(body any) bool {
	_, isReader := body.(io.Reader)
	return !isReader
}

func methodAllowsBody(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
