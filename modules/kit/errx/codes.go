package errx

// 系统类错误码：客户端各上下文共用，用于日志归类与排障。
//
// 约束：
// - 这里只放技术类错误（网络、存储、解析、超时等）
// - 业务拒绝码（例如 PLACEMENT_CELL_OCCUPIED）由各上下文在自己的 errors.go 里定义

const (
	// CodeInternal 兜底的内部错误。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 远端或本地依赖不可用（后端、数据库、磁盘）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 远端调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeBadResponse 远端返回无法解析。
	CodeBadResponse Code = "BAD_RESPONSE"
	// CodeReqParamError 调用方传入的参数不合法（本地校验失败）。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	// CodeRemoteRejected 远端明确拒绝了请求（带远端原因）。
	CodeRemoteRejected Code = "REMOTE_REJECTED"
)

// 哨兵错误：只读，派生请用 WithData/WithCause。
var (
	ErrInternal       = NewSys(CodeInternal, "internal error")
	ErrUnavailable    = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout        = NewSys(CodeTimeout, "request timeout")
	ErrBadResponse    = NewSys(CodeBadResponse, "bad response")
	ErrReqParamERR    = NewBiz(CodeReqParamError, "invalid request parameter")
	ErrRemoteRejected = NewBiz(CodeRemoteRejected, "rejected by server")
)
