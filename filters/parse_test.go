package filters

import (
	"reflect"
	"testing"

	"github.com/kbukum/filterkit/filter"
)

func TestParseJSONDecodesBody(t *testing.T) {
	s := &fakeSink{
		headers: map[string]string{"Content-Type": "application/json; charset=utf-8"},
		body:    []byte(`{"name":"widget","count":2}`),
	}
	_, result, _, body := run(t, ParseJSON(), s.sink, filter.NewOptions("http://example.com"))

	want := map[string]any{"name": "widget", "count": float64(2)}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("result = %v, want %v", result, want)
	}
	if string(body) != `{"name":"widget","count":2}` {
		t.Errorf("raw body altered: %q", body)
	}
}

func TestParseJSONSkipsNonJSON(t *testing.T) {
	s := &fakeSink{
		headers: map[string]string{"Content-Type": "text/html"},
		body:    []byte("<html></html>"),
	}
	_, result, _, _ := run(t, ParseJSON(), s.sink, filter.NewOptions("http://example.com"))
	if result != nil {
		t.Errorf("result = %v, want nil for non-JSON content type", result)
	}
}

func TestParseJSONMalformedBodyPassesThrough(t *testing.T) {
	s := &fakeSink{
		headers: map[string]string{"Content-Type": "application/json"},
		body:    []byte(`{"broken`),
	}
	err, result, _, body := run(t, ParseJSON(), s.sink, filter.NewOptions("http://example.com"))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil for malformed body", result)
	}
	if string(body) != `{"broken` {
		t.Errorf("raw body altered: %q", body)
	}
}

func TestParseJSONPreservesExistingResult(t *testing.T) {
	preset := filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		return next(opts, func(err error, _ any, resp *filter.Response, body []byte) {
			cb(err, "already set", resp, body)
		})
	})

	s := &fakeSink{
		headers: map[string]string{"Content-Type": "application/json"},
		body:    []byte(`{"x":1}`),
	}

	var gotResult any
	entry := filter.Fold(s.sink, preset, ParseJSON())
	entry(filter.NewOptions("http://example.com"), func(_ error, result any, _ *filter.Response, _ []byte) {
		gotResult = result
	})
	if gotResult != "already set" {
		t.Errorf("result = %v, want the upstream value preserved", gotResult)
	}
}
