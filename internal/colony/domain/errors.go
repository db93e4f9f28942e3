package domain

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeInsufficientResource Code = "COLONY_INSUFFICIENT_RESOURCE"
	CodeUnknownResource      Code = "COLONY_UNKNOWN_RESOURCE"
	CodeBuildingExists       Code = "COLONY_BUILDING_EXISTS"
	CodeInvalidTransition    Code = "COLONY_INVALID_TRANSITION"
)

type Error = errx.Error

var (
	ErrInsufficientResource = errx.NewBiz(CodeInsufficientResource, "insufficient resources")
	ErrUnknownResource      = errx.NewBiz(CodeUnknownResource, "unknown resource")
	ErrBuildingExists       = errx.NewBiz(CodeBuildingExists, "building already registered")
	// 状态机跳转非法属于程序错误。
	ErrInvalidTransition = errx.NewSys(CodeInvalidTransition, "invalid attempt transition")
)
