package filter

import (
	"reflect"
	"testing"
)

type nopStream struct{}

func (nopStream) Read(p []byte) (int, error)  { return 0, nil }
func (nopStream) Write(p []byte) (int, error) { return len(p), nil }
func (nopStream) Close() error                { return nil }

// tracingFilter appends its name on the request path and again, wrapped
// in the callback, on the response path.
func tracingFilter(name string, trace *[]string) Filter {
	return Func(func(opts *Options, next Next, cb Callback) Stream {
		*trace = append(*trace, name+":req")
		return next(opts, func(err error, result any, resp *Response, body []byte) {
			*trace = append(*trace, name+":resp")
			cb(err, result, resp, body)
		})
	})
}

func recordingSink(trace *[]string) Next {
	return func(opts *Options, cb Callback) Stream {
		*trace = append(*trace, "sink")
		cb(nil, nil, &Response{StatusCode: 200}, nil)
		return nopStream{}
	}
}

func TestFoldOrder(t *testing.T) {
	var trace []string
	entry := Fold(recordingSink(&trace),
		tracingFilter("a", &trace),
		tracingFilter("b", &trace),
		tracingFilter("c", &trace),
	)

	done := false
	entry(NewOptions("http://example.com"), func(err error, _ any, _ *Response, _ []byte) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done = true
	})
	if !done {
		t.Fatal("callback never invoked")
	}

	// The last filter is caller-facing: first on the request path, last
	// on the response path. The first filter is sink-facing.
	want := []string{"c:req", "b:req", "a:req", "sink", "a:resp", "b:resp", "c:resp"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestFoldNoFilters(t *testing.T) {
	var trace []string
	entry := Fold(recordingSink(&trace))
	entry(NewOptions("http://example.com"), func(error, any, *Response, []byte) {})
	if !reflect.DeepEqual(trace, []string{"sink"}) {
		t.Errorf("trace = %v, want [sink]", trace)
	}
}

func TestFoldNilFilterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil filter")
		}
	}()
	Fold(recordingSink(new([]string)), nil)
}

func TestCombineEquivalence(t *testing.T) {
	runFlat := func() []string {
		var trace []string
		entry := Fold(recordingSink(&trace),
			tracingFilter("a", &trace),
			tracingFilter("b", &trace),
			tracingFilter("c", &trace),
		)
		entry(NewOptions("http://example.com"), func(error, any, *Response, []byte) {})
		return trace
	}

	runCombined := func(grouping func(a, b, c Filter) Filter) []string {
		var trace []string
		a := tracingFilter("a", &trace)
		b := tracingFilter("b", &trace)
		c := tracingFilter("c", &trace)
		entry := Fold(recordingSink(&trace), grouping(a, b, c))
		entry(NewOptions("http://example.com"), func(error, any, *Response, []byte) {})
		return trace
	}

	flat := runFlat()
	combined := runCombined(func(a, b, c Filter) Filter { return Combine(a, b, c) })
	leftNested := runCombined(func(a, b, c Filter) Filter { return Combine(Combine(a, b), c) })
	rightNested := runCombined(func(a, b, c Filter) Filter { return Combine(a, Combine(b, c)) })

	if !reflect.DeepEqual(combined, flat) {
		t.Errorf("Combine(a,b,c) trace = %v, want %v", combined, flat)
	}
	if !reflect.DeepEqual(leftNested, flat) {
		t.Errorf("Combine(Combine(a,b),c) trace = %v, want %v", leftNested, flat)
	}
	if !reflect.DeepEqual(rightNested, flat) {
		t.Errorf("Combine(a,Combine(b,c)) trace = %v, want %v", rightNested, flat)
	}
}

func TestCombineSingle(t *testing.T) {
	var trace []string
	entry := Fold(recordingSink(&trace), Combine(tracingFilter("only", &trace)))
	entry(NewOptions("http://example.com"), func(error, any, *Response, []byte) {})
	want := []string{"only:req", "sink", "only:resp"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestCombineEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty Combine")
		}
	}()
	Combine()
}

func TestCombineShortCircuit(t *testing.T) {
	var trace []string
	shortCircuit := Func(func(opts *Options, next Next, cb Callback) Stream {
		cb(nil, "cached", &Response{StatusCode: 200}, nil)
		return nopStream{}
	})

	entry := Fold(recordingSink(&trace),
		Combine(tracingFilter("inner", &trace), shortCircuit),
	)

	var gotResult any
	entry(NewOptions("http://example.com"), func(_ error, result any, _ *Response, _ []byte) {
		gotResult = result
	})

	if gotResult != "cached" {
		t.Errorf("result = %v, want cached", gotResult)
	}
	if len(trace) != 0 {
		t.Errorf("inner filter and sink ran despite short-circuit: %v", trace)
	}
}

func TestOptionsMutationVisibleDownstream(t *testing.T) {
	setter := Func(func(opts *Options, next Next, cb Callback) Stream {
		opts.Headers["X-Set"] = "yes"
		return next(opts, cb)
	})

	var seen string
	sink := func(opts *Options, cb Callback) Stream {
		seen = opts.Headers["X-Set"]
		cb(nil, nil, &Response{StatusCode: 200}, nil)
		return nopStream{}
	}

	Fold(sink, setter)(NewOptions("http://example.com"), func(error, any, *Response, []byte) {})
	if seen != "yes" {
		t.Errorf("sink saw X-Set=%q, want yes", seen)
	}
}

func TestResponseClassification(t *testing.T) {
	tests := []struct {
		status  int
		success bool
		isErr   bool
	}{
		{200, true, false},
		{204, true, false},
		{301, false, false},
		{404, false, true},
		{500, false, true},
	}
	for _, tt := range tests {
		r := &Response{StatusCode: tt.status}
		if r.IsSuccess() != tt.success {
			t.Errorf("IsSuccess(%d) = %v, want %v", tt.status, r.IsSuccess(), tt.success)
		}
		if r.IsError() != tt.isErr {
			t.Errorf("IsError(%d) = %v, want %v", tt.status, r.IsError(), tt.isErr)
		}
	}
}
