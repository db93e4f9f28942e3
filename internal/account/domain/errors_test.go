package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_按错误码匹配(t *testing.T) {
	err := NewError(CodeSessionNotFound, map[string]any{"userId": int64(1)}, nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("期望 errors.Is(err, ErrSessionNotFound) == true, err=%v", err)
	}

	wrapped := fmt.Errorf("wrap: %w", err)
	if !errors.Is(wrapped, ErrSessionNotFound) {
		t.Fatalf("期望 errors.Is(wrapped, ErrSessionNotFound) == true, wrapped=%v", wrapped)
	}
}

func TestError_系统错误保留cause并带栈(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewError(CodeSystemUnavailable, nil, cause)

	if !errors.Is(err, ErrSystemUnavailable) {
		t.Fatalf("期望 errors.Is(err, ErrSystemUnavailable) == true, err=%v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 errors.Is(err, cause) == true, err=%v", err)
	}
	if got := err.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈, got=%v", got)
	}

	corrupt := NewError(CodeSessionCorrupt, nil, cause)
	if !errors.Is(corrupt, ErrSessionCorrupt) || len(corrupt.Stack()) == 0 {
		t.Fatalf("期望损坏的会话按系统错误处理, err=%v", corrupt)
	}
}

func TestError_WithData_不污染原对象(t *testing.T) {
	base := ErrSessionNotFound
	err := base.WithData("userId", int64(1))

	if base.Data() != nil {
		t.Fatalf("期望 base.Data() == nil（不应污染哨兵错误），base=%v", base)
	}
	if got := err.Data()["userId"]; got != int64(1) {
		t.Fatalf("期望 err.Data()[\"userId\"] == 1, got=%v", got)
	}

	m := map[string]any{"k": "v"}
	err2 := NewError(CodeSessionNotFound, m, nil)
	m["k"] = "mutated"
	if got := err2.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data；got=%v", got)
	}
}

func TestSession_Valid(t *testing.T) {
	if (Session{}).Valid() {
		t.Fatalf("期望空会话无效")
	}
	if !(Session{UserID: 3}).Valid() {
		t.Fatalf("期望有 id 的会话有效")
	}
}
