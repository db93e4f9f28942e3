package app

import (
	"context"

	"MoonColony/internal/api"
	catalog "MoonColony/internal/catalog/domain"
	world "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/logx"
)

// Catalog 是放置流程需要的目录能力。
type Catalog interface {
	Get(id int) (catalog.ModuleType, error)
}

// ModuleAPI 是后端模块接口。
type ModuleAPI interface {
	CheckPlacement(ctx context.Context, p api.ModulePlace, zone *int) (*api.CheckedPlace, error)
	CreateModule(ctx context.Context, p api.ModulePlace) (int64, error)
	DeleteModule(ctx context.Context, userID, moduleID int64) error
	Modules(ctx context.Context, userID int64) ([]api.ModuleDTO, error)
	CellTerrain(ctx context.Context, zone int, at world.Coord) (*api.CellTerrain, error)
}

// LinkAPI 是后端分区连接接口。
type LinkAPI interface {
	CreateLink(ctx context.Context, req api.LinkRequest) (int64, error)
	DeleteLink(ctx context.Context, req api.LinkRequest) error
	Links(ctx context.Context, userID int64) ([]api.LinkDTO, error)
	CheckLink(ctx context.Context, req api.LinkRequest) (*api.LinkCheck, error)
	OptimalLinks(ctx context.Context, userID int64) ([]api.LinkDTO, error)
}

type Logger = logx.Logger
