package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"MoonColony/modules/kit/errx"
)

// StatusError 是后端的非 2xx 响应。Message 取自响应体 message 字段，缺失时为通用文案。
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// statusError 把非 2xx 响应归类：4xx 视为后端拒绝（业务类），5xx 视为后端故障（系统类）。
// 两者的提示文案都是后端给的 message。
func statusError(path string, status int, body []byte) error {
	se := &StatusError{Status: status, Message: messageFromBody(status, body)}
	base := errx.ErrRemoteRejected
	if status >= http.StatusInternalServerError {
		base = errx.ErrUnavailable
	}
	return base.WithMsg(se.Message).
		WithData("path", path).
		WithData("status", status).
		WithCause(se)
}

func messageFromBody(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP error! Status: %d", status)
}

// StatusOf 返回错误链上后端响应的 HTTP 状态码，没有则为 0。
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// MessageOf 取面向用户的提示：后端 message 或错误自身的 msg，都没有时用 fallback。
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	var e *errx.Error
	if errors.As(err, &e) && strings.TrimSpace(e.Msg()) != "" {
		return e.Msg()
	}
	return fallback
}
