package app

import "MoonColony/modules/kit/errx"

// Code 表示应用层错误码。
type Code = errx.Code

const (
	CodeLoginRejected    Code = "ACCOUNT_LOGIN_REJECTED"
	CodeRegisterRejected Code = "ACCOUNT_REGISTER_REJECTED"
	CodeInternalServer   Code = errx.CodeInternal
	CodeUnavailable      Code = errx.CodeUnavailable
)

type Error = errx.Error

// NewError 创建业务类错误（不捕获栈）。
func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

// Wrap 创建系统类错误并挂载 cause。
func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrLoginRejected    = errx.NewBiz(CodeLoginRejected, "wrong email or password")
	ErrRegisterRejected = errx.NewBiz(CodeRegisterRejected, "registration failed")
	ErrNotSignedIn      = errx.ErrReqParamERR.WithMsg("sign in first")
	ErrInternalServer   = errx.ErrInternal
	ErrUnavailable      = errx.ErrUnavailable
)
