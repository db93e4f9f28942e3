package memory

import (
	"context"
	"fmt"
	"sync"

	"MoonColony/internal/world/domain"
)

// SnapshotRepository 是进程内的快照存储。map.snapshot_dir 为空时客户端用它，快照随进程结束丢弃。
type SnapshotRepository struct {
	mu    sync.RWMutex
	zones map[int]domain.ZoneTerrain
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{zones: make(map[int]domain.ZoneTerrain)}
}

// Path 返回快照的展示位置。
func (r *SnapshotRepository) Path(zoneID int) string {
	return fmt.Sprintf("memory://zone-%d", zoneID)
}

func (r *SnapshotRepository) Load(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.zones[zoneID]
	if !ok {
		return domain.ZoneTerrain{}, domain.ErrSnapshotNotFound.WithData("zone", zoneID)
	}
	return t.Clone(), nil
}

func (r *SnapshotRepository) Save(ctx context.Context, t domain.ZoneTerrain) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[t.ZoneID] = t.Clone()
	return nil
}
