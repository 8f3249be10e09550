package response

import (
	"errors"
	"testing"
)

func TestWrapErrorKeepsChain(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := WrapError(CodeInternal, "Login failed", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to match cause via errors.Is")
	}
	if wrapped.Code != CodeInternal {
		t.Fatalf("code want %d got %d", CodeInternal, wrapped.Code)
	}
	if got := wrapped.Error(); got != "Login failed: connection refused" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestAppErrorWithoutCause(t *testing.T) {
	wrapped := WrapError(CodeBadRequest, "Invalid request body", nil)
	if got := wrapped.Error(); got != "Invalid request body" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if wrapped.Unwrap() != nil {
		t.Fatalf("expected nil cause, got: %v", wrapped.Unwrap())
	}
}
