package app

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeReportInvalidInput Code = errx.CodeReqParamError
	CodeReportRenderFail   Code = "REPORT_RENDER_FAIL"
)

type Error = errx.Error

var (
	ErrInvalidInput = errx.ErrReqParamERR.WithMsg("report data is incomplete")
	ErrRenderFail   = errx.NewSys(CodeReportRenderFail, "report rendering failed")
	ErrUnavailable  = errx.ErrUnavailable
)
