package stub

import (
	"errors"
	"net/http"

	"MoonColony/modules/kit/errx"
)

// statusOf 把错误映射成 HTTP 状态码：找不到 404，重复 409，其余业务错误 400，系统错误 500。
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrModuleNotFound), errors.Is(err, ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserExists), errors.Is(err, ErrColonyExists), errors.Is(err, ErrLinkExists):
		return http.StatusConflict
	case errx.IsSys(err):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// messageOf 取写进响应体 message 的文案。
func messageOf(err error) string {
	var e *errx.Error
	if errors.As(err, &e) && e.Msg() != "" {
		return e.Msg()
	}
	return http.StatusText(statusOf(err))
}
