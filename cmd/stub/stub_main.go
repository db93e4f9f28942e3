package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MoonColony/internal/shared/config"
	"MoonColony/internal/shared/idgen"
	"MoonColony/internal/shared/logs"
	transporthttp "MoonColony/internal/shared/transport/http"
	"MoonColony/internal/stub"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: configs/conf.yml searched upward)")
	node := flag.Int64("node", 1, "snowflake node id")
	flag.Parse()

	conf := config.Load(*cfgPath)
	if err := logs.Init("stub", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("stub", conf.Stub), zap.Int("grid_size", conf.Map.GridSize))

	ids, err := idgen.NewSnowflake(*node)
	if err != nil {
		logs.Fatal("create id generator failed", zap.Error(err))
	}
	backend, err := stub.NewBackend(stub.Options{GridSize: conf.Map.GridSize, IDs: ids, Log: logs.Logger()})
	if err != nil {
		logs.Fatal("create stub backend failed", zap.Error(err))
	}

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	host := conf.Stub.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.Stub.Port)
	server := transporthttp.NewHttpServer(addr, "/api", nil, logs.Logger(), stub.NewHandler(backend, logs.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logs.Error("服务异常退出", zap.Error(err))
		return
	}
	logs.Info("stub backend stopped")
}
