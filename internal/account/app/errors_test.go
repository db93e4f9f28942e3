package app

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_按错误码匹配(t *testing.T) {
	err := NewError(CodeLoginRejected, "user not found")
	if !errors.Is(err, ErrLoginRejected) {
		t.Fatalf("期望 errors.Is(err, ErrLoginRejected) == true, err=%v", err)
	}

	wrapped := fmt.Errorf("wrap: %w", err)
	if !errors.Is(wrapped, ErrLoginRejected) {
		t.Fatalf("期望 errors.Is(wrapped, ErrLoginRejected) == true, wrapped=%v", wrapped)
	}
}

func TestError_Unwrap_保留cause链(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeInternalServer, "internal error", cause)

	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望 errors.Is(err, ErrInternalServer) == true, err=%v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 errors.Is(err, cause) == true, err=%v", err)
	}
	if got := err.Stack(); len(got) == 0 {
		t.Fatalf("期望带 cause 的应用错误捕获栈，got=%v", got)
	}
}

func TestError_WithCause_业务错误不捕获栈(t *testing.T) {
	cause := errors.New("status 404")
	err := ErrLoginRejected.WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务类错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}
