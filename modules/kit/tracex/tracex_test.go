package tracex

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("期望未设置 span_id 时返回 false")
	}
}

func TestEnsureTraceID_已有则复用(t *testing.T) {
	ctx := WithTraceID(context.Background(), "keep")
	_, tid := EnsureTraceID(ctx)
	if tid != "keep" {
		t.Fatalf("期望复用已有 trace_id, got=%q", tid)
	}
	ctx2, tid2 := EnsureTraceID(context.Background())
	if len(tid2) != 32 {
		t.Fatalf("期望生成 32 位 hex trace_id, got=%q", tid2)
	}
	if got, _ := TraceIDFrom(ctx2); got != tid2 {
		t.Fatalf("期望新 ctx 携带生成的 trace_id")
	}
}

func TestNewRequestID_是合法uuid(t *testing.T) {
	if _, err := uuid.Parse(NewRequestID()); err != nil {
		t.Fatalf("期望 request id 为 uuid, err=%v", err)
	}
}
