package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 技术错误 reason，用于日志与排障。
	ReasonRemoteTypesFail   = NewReason("CATALOG_REMOTE_TYPES_FAIL", "后端模块类型拉取失败")
	ReasonStaticTypesFail   = NewReason("CATALOG_STATIC_TYPES_FAIL", "内置模块类型表解析失败")
	ReasonLayoutUnavailable = NewReason("CATALOG_LAYOUT_UNAVAILABLE", "模块 layout 表不可用")
)
