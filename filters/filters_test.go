package filters

import (
	"testing"

	"github.com/kbukum/filterkit/filter"
)

type nopStream struct{}

func (nopStream) Read(p []byte) (int, error)  { return 0, nil }
func (nopStream) Write(p []byte) (int, error) { return len(p), nil }
func (nopStream) Close() error                { return nil }

// fakeSink answers every invocation with a canned response and records
// what it saw.
type fakeSink struct {
	calls   int
	lastOpt *filter.Options
	status  int
	headers map[string]string
	body    []byte
}

func (f *fakeSink) sink(opts *filter.Options, cb filter.Callback) filter.Stream {
	f.calls++
	f.lastOpt = opts
	status := f.status
	if status == 0 {
		status = 200
	}
	headers := f.headers
	if headers == nil {
		headers = map[string]string{}
	}
	cb(nil, nil, &filter.Response{StatusCode: status, Headers: headers}, f.body)
	return nopStream{}
}

// run applies a single filter over the sink and waits for the callback.
func run(t *testing.T, f filter.Filter, sink filter.Next, opts *filter.Options) (error, any, *filter.Response, []byte) {
	t.Helper()
	var (
		gotErr    error
		gotResult any
		gotResp   *filter.Response
		gotBody   []byte
		called    bool
	)
	filter.Fold(sink, f)(opts, func(err error, result any, resp *filter.Response, body []byte) {
		gotErr, gotResult, gotResp, gotBody = err, result, resp, body
		called = true
	})
	if !called {
		t.Fatal("callback never invoked")
	}
	return gotErr, gotResult, gotResp, gotBody
}

func TestHeaderSetsValue(t *testing.T) {
	s := &fakeSink{}
	run(t, Header("X-Api-Key", "secret"), s.sink, filter.NewOptions("http://example.com"))
	if got := s.lastOpt.Headers["X-Api-Key"]; got != "secret" {
		t.Errorf("X-Api-Key = %q, want secret", got)
	}
}

func TestRequestIDInjected(t *testing.T) {
	s := &fakeSink{}
	run(t, RequestID(), s.sink, filter.NewOptions("http://example.com"))
	if s.lastOpt.Headers[RequestIDHeader] == "" {
		t.Error("no request id injected")
	}
}

func TestRequestIDPreservesExisting(t *testing.T) {
	s := &fakeSink{}
	opts := filter.NewOptions("http://example.com")
	opts.Headers[RequestIDHeader] = "fixed-id"
	run(t, RequestID(), s.sink, opts)
	if got := s.lastOpt.Headers[RequestIDHeader]; got != "fixed-id" {
		t.Errorf("request id = %q, want fixed-id", got)
	}
}

func TestRequestIDUniquePerInvocation(t *testing.T) {
	s := &fakeSink{}
	f := RequestID()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		run(t, f, s.sink, filter.NewOptions("http://example.com"))
		id := s.lastOpt.Headers[RequestIDHeader]
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}
