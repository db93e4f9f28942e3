package middleware

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"MoonColony/internal/shared/transport"
	"MoonColony/modules/kit/logx"
	"MoonColony/modules/kit/tracex"
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 统一写访问日志：结果码取 HTTP 状态，失败时从响应体 `message` 字段取原因。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContextWithParent(c.Request.Context(), action, c.GetHeader(tracex.HeaderTraceID))
		if rid := c.GetHeader(tracex.HeaderRequestID); rid != "" {
			ctx = tracex.WithRequestID(ctx, rid)
		}
		c.Request = c.Request.WithContext(ctx)

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		status := c.Writer.Status()
		transport.SetBizCode(ctx, transport.BizCode(status))
		if status >= 400 {
			transport.SetErrorReason(ctx, parseMessage(bw.body.Bytes()))
		}
		transport.WriteAccessLog(ctx, log)
	}
}

func parseMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
