package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"MoonColony/internal/shared/transport"
	"MoonColony/modules/kit/logx"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", "/api", gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
}

func TestNewHttpServer_访问日志记录状态与跨域头(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, obs := observer.New(zapcore.DebugLevel)

	s := NewHttpServer(":0", "/api", gin.New(), logx.NewZapLogger(zap.New(core)))
	s.Group().GET("/missing", func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, gin.H{"message": "nope"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/missing", nil)
	req.Header.Set("X-Trace-Id", "trace-from-client")
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("期望 CORS 头, got=%v", w.Header())
	}
	entries := obs.FilterMessage("access").All()
	if len(entries) != 1 {
		t.Fatalf("期望一条访问日志, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(404) || fields["trace_id"] != "trace-from-client" {
		t.Fatalf("访问日志字段不符: %v", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("期望 404 记为 WARN, got=%v", entries[0].Level)
	}
}

func TestNewHttpServer_访问日志带上请求对象(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, obs := observer.New(zapcore.DebugLevel)

	s := NewHttpServer(":0", "/api", gin.New(), logx.NewZapLogger(zap.New(core)))
	s.Group().GET("/day/:id", func(c *gin.Context) {
		transport.SetSubject(c.Request.Context(), "user_id", 42)
		c.Status(nethttp.StatusNoContent)
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/day/42", nil))

	entries := obs.FilterMessage("access").All()
	if len(entries) != 1 {
		t.Fatalf("期望一条访问日志, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != int64(42) || fields["result"] != "success" {
		t.Fatalf("访问日志字段不符: %v", fields)
	}
}

type pingRoutes struct{}

func (pingRoutes) Register(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) { c.String(nethttp.StatusOK, "pong") })
}

func TestNewHttpServer_路由挂在前缀下且未知路径回message(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer(":0", "/api", gin.New(), nil, pingRoutes{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/ping", nil))
	if w.Code != nethttp.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("期望 /api/ping 返回 pong, got=%d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/nowhere", nil))
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("期望 404, got=%d", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("期望 JSON 响应体, got=%q", w.Body.String())
	}
	if body.Message != "no route for GET /api/nowhere" {
		t.Fatalf("message 不符: %q", body.Message)
	}
}

func TestRun_取消后优雅退出(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer("127.0.0.1:0", "/api", gin.New(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("期望正常退出, got=%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run 没有在取消后退出")
	}
}

func TestRun_监听失败返回错误(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer("127.0.0.1:-1", "/api", gin.New(), nil)
	if err := s.Run(context.Background()); err == nil {
		t.Fatalf("期望非法地址报错")
	}
}
