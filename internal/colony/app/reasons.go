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
	// 业务拒绝 reason，Message 是给玩家看的默认文案。
	ReasonOutOfBounds           = NewReason("PLACE_OUT_OF_BOUNDS", "out of bounds")
	ReasonCellOccupied          = NewReason("PLACE_CELL_OCCUPIED", "cell occupied")
	ReasonUnknownModuleType     = NewReason("PLACE_UNKNOWN_MODULE_TYPE", "unknown module type")
	ReasonInsufficientMaterials = NewReason("PLACE_INSUFFICIENT_MATERIALS", "insufficient materials")
	ReasonTerrainUnsuitable     = NewReason("PLACE_TERRAIN_UNSUITABLE", "terrain is not suitable for a cosmodrome")
	ReasonCheckNegative         = NewReason("PLACE_CHECK_NEGATIVE", "placement not possible")
	ReasonCreateNotConfirmed    = NewReason("PLACE_CREATE_NOT_CONFIRMED", "server rejected module creation")
	ReasonLinkCheckNegative     = NewReason("LINK_CHECK_NEGATIVE", "link not possible")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonCheckUnavailable  = NewReason("PLACE_CHECK_UNAVAILABLE", "放置校验请求失败")
	ReasonCreateUnavailable = NewReason("PLACE_CREATE_UNAVAILABLE", "模块创建请求失败")
	ReasonDeleteUnavailable = NewReason("PLACE_DELETE_UNAVAILABLE", "模块删除请求失败")
	ReasonLocalCommitFail   = NewReason("PLACE_LOCAL_COMMIT_FAIL", "后端已确认但本地登记失败")
	ReasonSyncUnavailable   = NewReason("COLONY_SYNC_UNAVAILABLE", "模块列表拉取失败")
)
