package app

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodePlacementRejected  Code = "COLONY_PLACEMENT_REJECTED"
	CodePlacementInFlight  Code = "COLONY_PLACEMENT_IN_FLIGHT"
	CodeCreateNotConfirmed Code = "COLONY_CREATE_NOT_CONFIRMED"
	CodeBuildingNotFound   Code = "COLONY_BUILDING_NOT_FOUND"
	CodeLinkRejected       Code = "COLONY_LINK_REJECTED"
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

// 哨兵错误：通过 With* 派生，不要直接改。
var (
	ErrPlacementRejected  = errx.NewBiz(CodePlacementRejected, "placement not possible")
	ErrPlacementInFlight  = errx.NewBiz(CodePlacementInFlight, "another placement is in progress")
	ErrCreateNotConfirmed = errx.NewBiz(CodeCreateNotConfirmed, "server rejected module creation")
	ErrBuildingNotFound   = errx.NewBiz(CodeBuildingNotFound, "no building at this cell")
	ErrLinkRejected       = errx.NewBiz(CodeLinkRejected, "link not possible")
	ErrNotSignedIn        = errx.ErrReqParamERR.WithMsg("sign in first")
)
