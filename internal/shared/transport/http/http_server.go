package http

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MoonColony/internal/shared/transport/http/middleware"
	"MoonColony/modules/kit/logx"
)

const shutdownTimeout = 10 * time.Second

// Routes 是挂在业务前缀下的一组路由。
type Routes interface {
	Register(g *gin.RouterGroup)
}

type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
	log    logx.Logger
}

// NewHttpServer 创建带 CORS、访问日志与 /healthz 的 gin 服务，routes 注册在 prefix（例如 /api）下。
// 未匹配的路径按后端格式回 404 {"message": ...}。
func NewHttpServer(addr, prefix string, engine *gin.Engine, logger logx.Logger, routes ...Routes) *Server {
	if logger == nil {
		logger = logx.Nop()
	}
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Cors())
	engine.Use(middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, gin.H{"message": "no route for " + c.Request.Method + " " + c.Request.URL.Path})
	})

	s := &Server{
		engine: engine,
		group:  engine.Group(prefix),
		log:    logger,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	for _, r := range routes {
		r.Register(s.group)
	}
	return s
}

// Start 阻塞运行；Shutdown 后返回 net/http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Run 监听直到 ctx 结束，然后在 shutdownTimeout 内优雅退出。正常退出返回 nil。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()
	s.log.Info("http server started", zap.String("addr", s.srv.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve %s: %w", s.srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown %s: %w", s.srv.Addr, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("http serve %s: %w", s.srv.Addr, err)
	}
	s.log.Info("http server stopped", zap.String("addr", s.srv.Addr))
	return nil
}

func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
