package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"MoonColony/modules/kit/logx"
	"MoonColony/modules/kit/tracex"
)

// AccessLog 是一次请求的日志上下文，中间件创建、handler 补充、结束时统一输出。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	startTime   time.Time
	action      string
	// subject 是请求作用的对象，例如 user_id=42。
	subjectKey string
	subjectID  int64
}

type accessLogKey struct{}

// NewContextWithParent 基于父 ctx 挂上 AccessLog；traceID 为空时生成新的。
func NewContextWithParent(parent context.Context, action, traceID string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	if traceID != "" {
		ctx = tracex.WithTraceID(ctx, traceID)
	} else {
		ctx, _ = tracex.EnsureTraceID(ctx)
	}
	ctx = tracex.WithSpanID(ctx, "stub")

	al := &AccessLog{
		BizCode:   SystemError,
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

// SetErrorReason 记录失败原因，空串忽略。
func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

// SetSubject 记录请求作用的对象 id，日志里以 key 为字段名。
func SetSubject(ctx context.Context, key string, id int64) {
	if al := FromContext(ctx); al != nil {
		al.subjectKey, al.subjectID = key, id
	}
}

// WriteAccessLog 输出访问日志，在中间件末尾调用一次。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	fields := []zap.Field{zap.Duration("latency", time.Since(al.startTime))}
	if al.subjectKey != "" {
		fields = append(fields, zap.Int64(al.subjectKey, al.subjectID))
	}
	if al.BizCode < BadRequest {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
