package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
	"MoonColony/modules/kit/tracex"
)

const defaultTimeout = 15 * time.Second

// Client 是后端 REST API 的薄封装：JSON 进出，非 2xx 统一转成 errx 错误。
type Client struct {
	baseURL string
	http    *http.Client
	log     logx.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New 创建客户端，baseURL 形如 http://host:8080/api。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logx.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request 描述一次调用；out 为 nil 时丢弃响应体。
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

// do 发送请求并解码响应：
//   - 非 2xx：优先取响应体 message，否则 "HTTP error! Status: N"
//   - 204：不解码，返回 noContent=true
//   - 响应不是 JSON 且 out 是 *string：按文本写入
func (c *Client) do(ctx context.Context, r request) (noContent bool, err error) {
	ctx, traceID := tracex.EnsureTraceID(ctx)
	requestID := tracex.NewRequestID()
	ctx = tracex.WithRequestID(ctx, requestID)
	action := r.method + " " + r.path

	var reader io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return false, errx.ErrReqParamERR.WithData("path", r.path).WithCause(err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return false, errx.ErrReqParamERR.WithData("path", r.path).WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(tracex.HeaderTraceID, traceID)
	req.Header.Set(tracex.HeaderRequestID, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		logx.ReportAccessWithLoggerContext(ctx, c.log, action, 0, zap.Error(err))
		return false, transportError(r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logx.ReportAccessWithLoggerContext(ctx, c.log, action, 0, zap.Error(err))
		return false, transportError(r.path, err)
	}
	logx.ReportAccessWithLoggerContext(ctx, c.log, action, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, statusError(r.path, resp.StatusCode, raw)
	}
	if resp.StatusCode == http.StatusNoContent {
		return true, nil
	}
	if r.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return len(bytes.TrimSpace(raw)) == 0, nil
	}
	if err := json.Unmarshal(raw, r.out); err != nil {
		if s, ok := r.out.(*string); ok {
			*s = string(raw)
			return false, nil
		}
		return false, errx.ErrBadResponse.WithData("path", r.path).WithCause(err)
	}
	return false, nil
}

func transportError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errx.ErrTimeout.WithData("path", path).WithCause(err)
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return errx.ErrTimeout.WithData("path", path).WithCause(err)
	}
	return errx.ErrUnavailable.WithData("path", path).WithCause(err)
}
