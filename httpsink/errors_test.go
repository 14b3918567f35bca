package httpsink

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{http.StatusUnauthorized, ErrCodeAuth, false},
		{http.StatusForbidden, ErrCodeAuth, false},
		{http.StatusNotFound, ErrCodeNotFound, false},
		{http.StatusTooManyRequests, ErrCodeRateLimit, true},
		{http.StatusBadRequest, ErrCodeValidation, false},
		{http.StatusInternalServerError, ErrCodeServer, true},
		{http.StatusBadGateway, ErrCodeServer, true},
	}
	for _, tt := range tests {
		err := ClassifyStatusCode(tt.status)
		if err == nil {
			t.Errorf("ClassifyStatusCode(%d) = nil", tt.status)
			continue
		}
		if err.Code != tt.code {
			t.Errorf("ClassifyStatusCode(%d).Code = %v, want %v", tt.status, err.Code, tt.code)
		}
		if err.Retryable != tt.retryable {
			t.Errorf("ClassifyStatusCode(%d).Retryable = %v, want %v", tt.status, err.Retryable, tt.retryable)
		}
	}
}

func TestClassifySuccessReturnsNil(t *testing.T) {
	for _, status := range []int{200, 201, 204, 301, 304} {
		if err := ClassifyStatusCode(status); err != nil {
			t.Errorf("ClassifyStatusCode(%d) = %v, want nil", status, err)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("dial refused")
	err := NewConnectionError(inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error not reachable via errors.Is")
	}
	if !IsConnection(err) {
		t.Error("IsConnection failed on connection error")
	}
	if IsTimeout(err) {
		t.Error("IsTimeout matched a connection error")
	}
}
