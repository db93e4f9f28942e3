package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	accountapp "MoonColony/internal/account/app"
	accountrepo "MoonColony/internal/account/infra/repo"
	"MoonColony/internal/api"
	catalogapp "MoonColony/internal/catalog/app"
	"MoonColony/internal/catalog/infra/remote"
	"MoonColony/internal/catalog/infra/static"
	colonyapp "MoonColony/internal/colony/app"
	colonydomain "MoonColony/internal/colony/domain"
	gameapp "MoonColony/internal/game/app"
	gamedomain "MoonColony/internal/game/domain"
	reportapp "MoonColony/internal/report/app"
	"MoonColony/internal/report/infra/pdf"
	"MoonColony/internal/shared/config"
	"MoonColony/internal/shared/infrastructure/db"
	"MoonColony/internal/shared/logs"
	worldapp "MoonColony/internal/world/app"
	"MoonColony/internal/world/app/port"
	worlddomain "MoonColony/internal/world/domain"
	"MoonColony/internal/world/infra/persistence/memory"
	"MoonColony/internal/world/infra/persistence/snapshot"
	worldremote "MoonColony/internal/world/infra/remote"
	"MoonColony/modules/kit/logx"
)

// snapshotStore 是地形快照存储，Path 用于提示快照写到了哪里。
type snapshotStore interface {
	port.SnapshotRepository
	Path(zoneID int) string
}

// newSnapshotStore 按目录落盘；目录为空时只存在内存里。
func newSnapshotStore(dir string) snapshotStore {
	if dir == "" {
		return memory.NewSnapshotRepository()
	}
	return snapshot.NewRepository(dir)
}

// colonyApp 持有一次命令执行所需的全部服务。
type colonyApp struct {
	conf   config.Config
	log    logx.Logger
	db     *gorm.DB
	client *api.Client

	session   *accountapp.SessionService
	catalog   *catalogapp.Service
	ledger    *colonydomain.ResourceLedger
	events    *colonydomain.Events
	grid      *worlddomain.Grid
	terrain   *worldapp.TerrainService
	snapshots snapshotStore
	placement *colonyapp.PlacementService
	links     *colonyapp.LinkService
	days      *gameapp.DayService
	reports   *reportapp.Generator
}

func newColonyApp(ctx context.Context, cfgPath string) (*colonyApp, error) {
	conf := config.Load(cfgPath)
	if err := logs.Init("colony", conf.Log); err != nil {
		return nil, err
	}
	log := logs.Logger()

	gormDB, err := db.Open(conf.Storage)
	if err != nil {
		return nil, err
	}
	sessions := accountrepo.NewSessionRepo(gormDB)
	if err := sessions.Migrate(ctx); err != nil {
		return nil, err
	}

	client := api.New(conf.API.BaseURL, api.WithTimeout(conf.API.Timeout), api.WithLogger(log))

	grid, err := worlddomain.Generate(conf.Map.GridSize, conf.Map.CellSize)
	if err != nil {
		return nil, err
	}
	a := &colonyApp{
		conf:      conf,
		log:       log,
		db:        gormDB,
		client:    client,
		session:   accountapp.NewSessionService(client, sessions, time.Now, log),
		catalog:   catalogapp.NewService(remote.New(client), static.New(), static.Layouts, log),
		ledger:    colonydomain.NewResourceLedger(),
		events:    colonydomain.NewEvents(),
		grid:      grid,
		snapshots: newSnapshotStore(conf.Map.SnapshotDir),
	}
	a.terrain = worldapp.NewTerrainService(worldremote.NewTerrainSource(client), a.snapshots, log)
	a.placement = colonyapp.NewPlacementService(grid, a.ledger, colonydomain.NewRegistry(), a.catalog, client, a.events, log)
	a.links = colonyapp.NewLinkService(client, a.ledger, log)
	a.days = gameapp.NewDayService(client, gamedomain.NewClock(gamedomain.Epoch()), a.ledger, a.events, log)
	a.reports = reportapp.NewGenerator(client,
		pdf.Factory(pdf.Options{FontPath: conf.Report.FontPath, LogoPath: conf.Report.LogoPath}),
		pdf.NewFileStore(conf.Report.OutputDir), log)

	a.events.Subscribe(func(ev colonydomain.Event) {
		switch ev.Kind {
		case colonydomain.BuildingPlaced, colonydomain.BuildingRemoved:
			log.Debug("colony event", zap.String("kind", string(ev.Kind)), zap.String("anchor", ev.Building.Anchor.String()))
		case colonydomain.DayAdvanced:
			log.Debug("colony event", zap.String("kind", string(ev.Kind)), zap.Int("day", ev.Day))
		}
	})

	if _, _, err := a.session.Restore(ctx); err != nil {
		log.Warn("restore session failed", zap.Error(err))
	}
	return a, nil
}

// Close 刷日志并关闭数据库连接。
func (a *colonyApp) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logs.Sync()
}

// userID 返回当前登录用户，未登录时返回可直接展示的错误。
func (a *colonyApp) userID() (int64, error) {
	return a.session.UserID()
}

// syncColony 把后端的资源余额和已建模块同步到本地账本与网格。
func (a *colonyApp) syncColony(ctx context.Context, userID int64) error {
	if err := a.catalog.Load(ctx); err != nil {
		return err
	}
	res, err := a.client.Resources(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range res {
		a.ledger.SetAt(r.Type, float64(r.Count))
	}
	_, err = a.placement.SyncFromServer(ctx, userID)
	return err
}

// loadTerrain 把分区地形写进网格。失败只记日志，放置仍以后端校验为准。
func (a *colonyApp) loadTerrain(ctx context.Context, zoneID int) {
	n, err := a.terrain.Apply(ctx, a.grid, zoneID)
	if err != nil {
		a.log.Warn("load terrain failed", zap.Int("zone", zoneID), zap.Error(err))
		return
	}
	a.log.Debug("terrain loaded", zap.Int("zone", zoneID), zap.Int("cells", n))
}

// zoneOrDefault 把未指定的分区换成配置里的默认分区。
func (a *colonyApp) zoneOrDefault(zoneID int) int {
	if zoneID > 0 {
		return zoneID
	}
	return a.conf.API.DefaultZone
}
