package domain

import (
	"sort"
	"sync"
	"time"

	world "MoonColony/internal/world/domain"
)

type BuildingMeta struct {
	ZoneID int
}

// Building 以锚点格子为主键。ServerID 在后端确认建造后才有值。
type Building struct {
	Anchor       world.Coord
	ModuleTypeID int
	Footprint    []world.Offset
	ServerID     *int64
	PlacedAt     time.Time
	Meta         BuildingMeta
}

// Cells 返回建筑覆盖的全部格子。
func (b Building) Cells() []world.Coord {
	return world.Cover(b.Anchor, b.Footprint)
}

func (b Building) clone() Building {
	out := b
	out.Footprint = append([]world.Offset(nil), b.Footprint...)
	if b.ServerID != nil {
		id := *b.ServerID
		out.ServerID = &id
	}
	return out
}

// Registry 按锚点登记建筑，另维护格子到锚点的成员索引，任一覆盖格子都能查到建筑。
type Registry struct {
	mu       sync.RWMutex
	byAnchor map[world.Coord]Building
	members  map[world.Coord]world.Coord
}

func NewRegistry() *Registry {
	return &Registry{
		byAnchor: make(map[world.Coord]Building),
		members:  make(map[world.Coord]world.Coord),
	}
}

// Add 登记建筑；任一覆盖格子已属于其他建筑时返回 ErrBuildingExists。
func (r *Registry) Add(b Building) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cells := b.Cells()
	for _, c := range cells {
		if owner, ok := r.members[c]; ok {
			return ErrBuildingExists.WithData("coord", c.String()).WithData("anchor", owner.String())
		}
	}
	r.byAnchor[b.Anchor] = b.clone()
	for _, c := range cells {
		r.members[c] = b.Anchor
	}
	return nil
}

// At 按任一覆盖格子查找建筑。
func (r *Registry) At(c world.Coord) (Building, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	anchor, ok := r.members[c]
	if !ok {
		return Building{}, false
	}
	return r.byAnchor[anchor].clone(), true
}

// Remove 按锚点删除建筑及其成员索引。
func (r *Registry) Remove(anchor world.Coord) (Building, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byAnchor[anchor]
	if !ok {
		return Building{}, false
	}
	for _, c := range b.Cells() {
		delete(r.members, c)
	}
	delete(r.byAnchor, anchor)
	return b, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byAnchor)
}

// All 返回全部建筑，按锚点 (x, z) 排序。
func (r *Registry) All() []Building {
	r.mu.RLock()
	out := make([]Building, 0, len(r.byAnchor))
	for _, b := range r.byAnchor {
		out = append(out, b.clone())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Anchor.X != out[j].Anchor.X {
			return out[i].Anchor.X < out[j].Anchor.X
		}
		return out[i].Anchor.Z < out[j].Anchor.Z
	})
	return out
}

// Clear 清空登记并返回原有建筑。
func (r *Registry) Clear() []Building {
	all := r.All()
	r.mu.Lock()
	r.byAnchor = make(map[world.Coord]Building)
	r.members = make(map[world.Coord]world.Coord)
	r.mu.Unlock()
	return all
}
