package app

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeColonyFinished Code = "GAME_COLONY_FINISHED"
)

type Error = errx.Error

var (
	ErrColonyFinished = errx.NewBiz(CodeColonyFinished, "colonization is already finished")
	ErrNotSignedIn    = errx.ErrReqParamERR.WithMsg("sign in first")
	ErrUnavailable    = errx.ErrUnavailable
)
