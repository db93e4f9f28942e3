package logx

import (
	"context"
	"errors"
	"testing"

	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_提取code数据与栈(t *testing.T) {
	e := errx.ErrUnavailable.
		WithData("endpoint", "/api/check").
		WithCause(errors.New("connection refused"))

	meta := BuildErrorLog(e)
	if meta.Code != string(errx.CodeUnavailable) {
		t.Fatalf("期望 code=%s, got=%q", errx.CodeUnavailable, meta.Code)
	}
	if meta.Msg == "" {
		t.Fatalf("期望 meta.Msg 非空")
	}
	if meta.Data["endpoint"] != "/api/check" {
		t.Fatalf("期望 data 包含 endpoint, got=%v", meta.Data)
	}
	if len(meta.CauseChain) != 1 {
		t.Fatalf("期望一层 cause, got=%v", meta.CauseChain)
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望系统错误带栈 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportAccess_按状态码分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.WithTraceID(context.Background(), "t-9")

	ReportAccessWithLoggerContext(ctx, l, "GET /api/area", 200)
	ReportAccessWithLoggerContext(ctx, l, "POST /api/check", 409)
	ReportAccessWithLoggerContext(ctx, l, "POST /api/module", 0)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志, got=%d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条期望级别 %v, got=%v", i, want[i], e.Level)
		}
		if e.ContextMap()["trace_id"] != "t-9" {
			t.Fatalf("期望携带 trace_id, got=%v", e.ContextMap())
		}
	}
}

func TestReportError_业务错误走INFO(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	err := errx.ErrReqParamERR.WithMsg("cell occupied").WithData("reason", "PLACEMENT_CELL_OCCUPIED")
	ReportErrorWithLoggerContext(context.Background(), l, "place", err, errx.IsSys(err))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("期望一条 INFO 日志, got=%v", entries)
	}
	if entries[0].ContextMap()["reason"] != "PLACEMENT_CELL_OCCUPIED" {
		t.Fatalf("期望带 reason 字段, got=%v", entries[0].ContextMap())
	}
}
