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
	ReasonColonyFinished = NewReason("GAME_COLONY_FINISHED", "colonization is already finished")
	ReasonColonyDied     = NewReason("GAME_COLONY_DIED", "colony ran out of resources")
)

var (
	ReasonDayAdvanceFail = NewReason("DAY_ADVANCE_FAIL", "换日请求失败")
)
