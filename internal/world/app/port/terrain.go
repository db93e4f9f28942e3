package port

import (
	"context"

	"MoonColony/internal/world/domain"
)

// TerrainSource 按分区提供地形。
type TerrainSource interface {
	ZoneTerrain(ctx context.Context, zoneID int) (domain.ZoneTerrain, error)
}

// SnapshotRepository 保存分区地形快照，离线时复用。
type SnapshotRepository interface {
	Load(ctx context.Context, zoneID int) (domain.ZoneTerrain, error)
	Save(ctx context.Context, t domain.ZoneTerrain) error
}
