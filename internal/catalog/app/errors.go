package app

import "MoonColony/modules/kit/errx"

type Code = errx.Code

const (
	CodeCatalogNotLoaded  Code = "CATALOG_NOT_LOADED"
	CodeUnknownModuleType Code = "CATALOG_UNKNOWN_MODULE_TYPE"
)

type Error = errx.Error

// 哨兵错误：通过 WithData/WithCause 派生，不要直接改。
var (
	ErrCatalogNotLoaded  = errx.NewBiz(CodeCatalogNotLoaded, "module catalog is not loaded")
	ErrUnknownModuleType = errx.NewBiz(CodeUnknownModuleType, "unknown module type")
	ErrUnavailable       = errx.ErrUnavailable
)
