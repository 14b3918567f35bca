package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/filters"
	"github.com/kbukum/filterkit/httpsink"
)

// Full chain: verb helper through real filters into the HTTP sink.
func TestEndToEndAgainstHTTPServer(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(filters.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	sink, err := httpsink.New(httpsink.Config{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("httpsink.New: %v", err)
	}

	p := New(sink.Do,
		filters.BearerToken(filters.StaticToken("e2e-token")),
		filters.ParseJSON(),
		filters.RequestID(),
	)

	done := make(chan struct{})
	var gotResult any
	_, err = p.Post(srv.URL, func(cbErr error, result any, resp *filter.Response, body []byte) {
		if cbErr != nil {
			t.Errorf("callback error: %v", cbErr)
		}
		if resp == nil || resp.StatusCode != 200 {
			t.Errorf("resp = %+v", resp)
		}
		if string(body) != `{"status":"created"}` {
			t.Errorf("body = %q", body)
		}
		gotResult = result
		close(done)
	})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never invoked")
	}

	if gotAuth != "Bearer e2e-token" {
		t.Errorf("server saw Authorization %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("server saw no request id")
	}
	m, ok := gotResult.(map[string]any)
	if !ok || m["status"] != "created" {
		t.Errorf("decoded result = %v", gotResult)
	}
}
