package domain

import "MoonColony/modules/kit/errx"

// Code 表示领域错误码。
//
// 约定：
// - 领域层只关心“是什么错”（code）以及业务上下文（data）
// - cause 仅用于溯源/日志，不参与对外语义
type Code = errx.Code

const (
	CodeSessionNotFound Code = "ACCOUNT_SESSION_NOT_FOUND"
	CodeSessionCorrupt  Code = "ACCOUNT_SESSION_CORRUPT"
	// CodeSystemUnavailable 复用 kit 的统一系统码。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

func NewError(code Code, data map[string]any, cause error) *Error {
	base := newByCodeKind(code)
	if data != nil {
		base = base.WithDataMap(data)
	}
	if cause != nil {
		base = base.WithCause(cause)
	}
	return base
}

var (
	ErrSessionNotFound   = errx.NewBiz(CodeSessionNotFound, "")
	ErrSessionCorrupt    = errx.NewSys(CodeSessionCorrupt, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)

func newByCodeKind(code Code) *Error {
	switch code {
	case CodeSystemUnavailable:
		return errx.ErrUnavailable
	case CodeSessionCorrupt:
		return ErrSessionCorrupt
	default:
		return errx.NewBiz(code, "")
	}
}
