package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 业务拒绝 reason：后端拒绝了登录或注册。
	ReasonLoginRejected    = NewReason("ACCOUNT_LOGIN_REJECTED", "wrong email or password")
	ReasonRegisterRejected = NewReason("ACCOUNT_REGISTER_REJECTED", "registration failed")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonBackendUnavailable = NewReason("ACCOUNT_BACKEND_UNAVAILABLE", "后端不可用")
	ReasonSessionWriteFail   = NewReason("SESSION_WRITE_FAIL", "会话写入失败")
	ReasonSessionReadFail    = NewReason("SESSION_READ_FAIL", "会话读取失败")
	ReasonSessionDeleteFail  = NewReason("SESSION_DELETE_FAIL", "会话删除失败")
)
