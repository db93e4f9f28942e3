package stub

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeUserNotFound      Code = "STUB_USER_NOT_FOUND"
	CodeUserExists        Code = "STUB_USER_EXISTS"
	CodeColonyExists      Code = "STUB_COLONY_EXISTS"
	CodeColonyFinished    Code = "STUB_COLONY_FINISHED"
	CodeModuleNotFound    Code = "STUB_MODULE_NOT_FOUND"
	CodeLinkExists        Code = "STUB_LINK_EXISTS"
	CodeLinkNotFound      Code = "STUB_LINK_NOT_FOUND"
	CodeNotEnoughMaterial Code = "STUB_NOT_ENOUGH_MATERIAL"
	CodePlaceNotPossible  Code = "STUB_PLACE_NOT_POSSIBLE"
)

type Error = errx.Error

var (
	ErrUserNotFound      = errx.NewBiz(CodeUserNotFound, "user not found")
	ErrUserExists        = errx.NewBiz(CodeUserExists, "user already exists")
	ErrColonyExists      = errx.NewBiz(CodeColonyExists, "user already has a colony")
	ErrColonyFinished    = errx.NewBiz(CodeColonyFinished, "colonization is finished")
	ErrModuleNotFound    = errx.NewBiz(CodeModuleNotFound, "module not found")
	ErrLinkExists        = errx.NewBiz(CodeLinkExists, "link already exists")
	ErrLinkNotFound      = errx.NewBiz(CodeLinkNotFound, "link not found")
	ErrNotEnoughMaterial = errx.NewBiz(CodeNotEnoughMaterial, "not enough materials")
	ErrPlaceNotPossible  = errx.NewBiz(CodePlaceNotPossible, "placement not possible")
	ErrReqParamERR       = errx.ErrReqParamERR
)
