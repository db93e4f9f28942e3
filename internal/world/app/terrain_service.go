package app

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"MoonColony/internal/world/app/port"
	"MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// TerrainService 按分区缓存地形：每个分区一次会话只拉一次，
// 同一分区的并发请求共用一次拉取。
type TerrainService struct {
	source    port.TerrainSource
	snapshots port.SnapshotRepository
	log       logx.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[int]domain.ZoneTerrain
}

// NewTerrainService 创建服务；snapshots 可为 nil，非 nil 时后端失败会回退读快照。
func NewTerrainService(source port.TerrainSource, snapshots port.SnapshotRepository, log logx.Logger) *TerrainService {
	if log == nil {
		log = logx.Nop()
	}
	return &TerrainService{
		source:    source,
		snapshots: snapshots,
		log:       log,
		cache:     make(map[int]domain.ZoneTerrain),
	}
}

// Zone 返回分区地形的副本。
func (s *TerrainService) Zone(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	if t, ok := s.Cached(zoneID); ok {
		return t, nil
	}
	v, err, _ := s.group.Do(strconv.Itoa(zoneID), func() (any, error) {
		if t, ok := s.Cached(zoneID); ok {
			return t, nil
		}
		t, err := s.fetch(ctx, zoneID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[zoneID] = t
		s.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return domain.ZoneTerrain{}, err
	}
	return v.(domain.ZoneTerrain).Clone(), nil
}

func (s *TerrainService) fetch(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	t, err := s.source.ZoneTerrain(ctx, zoneID)
	if err == nil {
		return t, nil
	}
	if s.snapshots == nil {
		return domain.ZoneTerrain{}, err
	}
	snap, snapErr := s.snapshots.Load(ctx, zoneID)
	if snapErr != nil {
		return domain.ZoneTerrain{}, err
	}
	s.log.WithContext(ctx).Warn("terrain served from snapshot",
		zap.Int("zone", zoneID), zap.Error(err))
	return snap, nil
}

// Cached 只查缓存，不触发拉取。
func (s *TerrainService) Cached(zoneID int) (domain.ZoneTerrain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.cache[zoneID]
	if !ok {
		return domain.ZoneTerrain{}, false
	}
	return t.Clone(), true
}

// Apply 把分区地形写进网格，返回写入的格子数；地图外的格子跳过。
func (s *TerrainService) Apply(ctx context.Context, grid *domain.Grid, zoneID int) (int, error) {
	t, err := s.Zone(ctx, zoneID)
	if err != nil {
		return 0, err
	}
	zoneType := t.Type
	n := 0
	for _, c := range t.Cells {
		if !grid.InBounds(c.Coord) {
			continue
		}
		angle := c.Angle
		if err := grid.UpdateHeight(c.Coord, c.Height, &angle); err != nil {
			return n, err
		}
		if err := grid.SetTerrainMeta(c.Coord, t.Illumination, &zoneType); err != nil {
			return n, err
		}
		n++
	}
	s.log.WithContext(ctx).Debug("terrain applied", zap.Int("zone", zoneID), zap.Int("cells", n))
	return n, nil
}

// Export 取分区地形并写入快照。
func (s *TerrainService) Export(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	if s.snapshots == nil {
		return domain.ZoneTerrain{}, errx.ErrReqParamERR.WithMsg("snapshot storage is not configured")
	}
	t, err := s.Zone(ctx, zoneID)
	if err != nil {
		return domain.ZoneTerrain{}, err
	}
	if err := s.snapshots.Save(ctx, t); err != nil {
		return domain.ZoneTerrain{}, err
	}
	return t, nil
}
