package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_NotFound(t *testing.T) {
	err := NotFound("item", "AZ-Dataset-0001.json")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["id"] != "AZ-Dataset-0001.json" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}

	empty := NotFound("item", "")
	if _, ok := empty.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := InvalidName("../x", "contains a path separator")
	if !strings.Contains(err.Error(), "INVALID_NAME") {
		t.Errorf("expected code in message, got %q", err.Error())
	}

	wrapped := IO("write item", fmt.Errorf("disk full"))
	if !strings.Contains(wrapped.Error(), "cause: disk full") {
		t.Errorf("expected cause in message, got %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := ExternalServiceError("s3", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !err.Retryable {
		t.Error("external service errors should be retryable")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain", fmt.Errorf("boom"), ""},
		{"direct", BackendUnavailable("s3"), ErrCodeBackendUnavailable},
		{"wrapped", fmt.Errorf("get: %w", NotFound("item", "x")), ErrCodeNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Errorf("CodeOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrap: %w", NotFound("item", ""))) {
		t.Error("expected IsNotFound for wrapped NotFound")
	}
	if IsNotFound(nil) {
		t.Error("nil is not a not-found error")
	}
	if !IsUnavailable(BackendUnavailable("minio")) {
		t.Error("expected IsUnavailable")
	}
	if IsUnavailable(Internal(nil)) {
		t.Error("internal error is not unavailable")
	}
}

func TestWithDetail(t *testing.T) {
	err := MissingField("bucket").WithDetail("provider", "s3")
	if err.Details["field"] != "bucket" || err.Details["provider"] != "s3" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}
