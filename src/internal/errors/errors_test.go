package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeConfig, "invalid configuration"),
			expected: "[CONFIG_ERROR] invalid configuration",
		},
		{
			name:     "error with cause",
			err:      NewCaptureError("could not run 'iptables -L -v -n'", errors.New("exit status 4")),
			expected: "[CAPTURE_ERROR] could not run 'iptables -L -v -n': exit status 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	if !errors.Is(err, cause) {
		t.Errorf("Expected errors.Is to find the cause")
	}
}

func TestError_Is(t *testing.T) {
	err1 := New(ErrCodeConfig, "test error")
	err2 := New(ErrCodeConfig, "another error")
	err3 := New(ErrCodeCapture, "capture error")

	if !errors.Is(err1, err2) {
		t.Errorf("Expected errors with same code to match")
	}
	if errors.Is(err1, err3) {
		t.Errorf("Expected errors with different codes to not match")
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("watch failed: %w", NewCaptureError("first capture", errors.New("permission denied")))

	if !HasCode(wrapped, ErrCodeCapture) {
		t.Errorf("Expected wrapped capture error to be detected")
	}
	if HasCode(wrapped, ErrCodeConfig) {
		t.Errorf("Expected config code not to match")
	}
	if HasCode(nil, ErrCodeCapture) {
		t.Errorf("Expected nil error not to match")
	}
}
