package transport

// BizCode 是写进访问日志的结果码，取 HTTP 状态码语义。
type BizCode int

const (
	OK          BizCode = 200
	NoContent   BizCode = 204
	BadRequest  BizCode = 400
	NotFound    BizCode = 404
	Conflict    BizCode = 409
	SystemError BizCode = 500
)
