package filters

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/logger"
)

func newCaptureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	return logger.FromZerolog(zl), &buf
}

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestRequestLoggerSuccess(t *testing.T) {
	log, buf := newCaptureLogger()
	s := &fakeSink{}

	opts := filter.NewOptions("http://example.com/items")
	opts.Method = "GET"
	run(t, RequestLogger(log), s.sink, opts)

	entry := logLine(t, buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry[logger.FieldMethod] != "GET" {
		t.Errorf("method = %v, want GET", entry[logger.FieldMethod])
	}
	if entry[logger.FieldURI] != "http://example.com/items" {
		t.Errorf("uri = %v", entry[logger.FieldURI])
	}
	if entry[logger.FieldStatus] != float64(200) {
		t.Errorf("status = %v, want 200", entry[logger.FieldStatus])
	}
}

func TestRequestLoggerErrorStatus(t *testing.T) {
	log, buf := newCaptureLogger()
	s := &fakeSink{status: 404}

	run(t, RequestLogger(log), s.sink, filter.NewOptions("http://example.com"))

	entry := logLine(t, buf)
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}

func TestRequestLoggerFailure(t *testing.T) {
	log, buf := newCaptureLogger()
	failing := func(opts *filter.Options, cb filter.Callback) filter.Stream {
		cb(errors.New("boom"), nil, nil, nil)
		return nopStream{}
	}

	var gotErr error
	entry := filter.Fold(failing, RequestLogger(log))
	entry(filter.NewOptions("http://example.com"), func(err error, _ any, _ *filter.Response, _ []byte) {
		gotErr = err
	})

	if gotErr == nil {
		t.Fatal("error not passed through")
	}
	line := logLine(t, buf)
	if line["level"] != "error" {
		t.Errorf("level = %v, want error", line["level"])
	}
}

func TestRequestLoggerPassesResultsThrough(t *testing.T) {
	log, _ := newCaptureLogger()
	s := &fakeSink{body: []byte("payload")}

	err, _, resp, body := run(t, RequestLogger(log), s.sink, filter.NewOptions("http://example.com"))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if resp == nil || resp.StatusCode != 200 {
		t.Errorf("resp = %+v", resp)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q, want payload", body)
	}
}
