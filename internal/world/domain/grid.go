package domain

import (
	"math/rand/v2"
	"sync"
)

// Segment 是网格背景线的一段，两端点在 y=0 平面上。
type Segment struct {
	From, To Vec3
}

// Grid 是静态大小的方形地图，格子在 Generate 时全部创建、之后不会删除。
type Grid struct {
	mu       sync.RWMutex
	size     int
	cellSize float64
	cells    map[Coord]*Cell
	lines    []Segment
	rnd      func() float64
}

type Option func(*Grid)

// WithRand 注入倾斜计算用的随机源，返回值需在 [0,1)。
func WithRand(rnd func() float64) Option {
	return func(g *Grid) {
		if rnd != nil {
			g.rnd = rnd
		}
	}
}

// Generate 创建 gridSize×gridSize 个高度为 0 的空闲格子和背景网格线，地图中心在原点。
func Generate(gridSize int, cellSize float64, opts ...Option) (*Grid, error) {
	if gridSize <= 0 || cellSize <= 0 {
		return nil, ErrInvalidGrid.WithData("grid_size", gridSize).WithData("cell_size", cellSize)
	}
	g := &Grid{
		size:     gridSize,
		cellSize: cellSize,
		cells:    make(map[Coord]*Cell, gridSize*gridSize),
		rnd:      rand.Float64,
	}
	for _, opt := range opts {
		opt(g)
	}

	offset := float64(gridSize)*cellSize/2 - cellSize/2
	for x := 0; x < gridSize; x++ {
		for z := 0; z < gridSize; z++ {
			c := Coord{X: x, Z: z}
			g.cells[c] = &Cell{
				Coord: c,
				Position: Vec3{
					X: float64(x)*cellSize + cellSize/2 - offset,
					Z: float64(z)*cellSize + cellSize/2 - offset,
				},
				Color:    HeightColor(0),
				Rotation: flat(),
			}
		}
	}

	// 网格线落在格子边上
	lo, hi := -offset, float64(gridSize)*cellSize-offset
	g.lines = make([]Segment, 0, 2*(gridSize+1))
	for i := 0; i <= gridSize; i++ {
		p := float64(i)*cellSize - offset
		g.lines = append(g.lines,
			Segment{From: Vec3{X: lo, Z: p}, To: Vec3{X: hi, Z: p}},
			Segment{From: Vec3{X: p, Z: lo}, To: Vec3{X: p, Z: hi}},
		)
	}
	return g, nil
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Lines 返回背景网格线副本。
func (g *Grid) Lines() []Segment {
	out := make([]Segment, len(g.lines))
	copy(out, g.lines)
	return out
}

// Cell 返回格子快照；坐标不在地图内时 ok=false。
func (g *Grid) Cell(c Coord) (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cell, ok := g.cells[c]
	if !ok {
		return Cell{}, false
	}
	return *cell, true
}

func (g *Grid) InBounds(c Coord) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.cells[c]
	return ok
}

// IsFree 表示格子存在且未被占用。
func (g *Grid) IsFree(c Coord) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cell, ok := g.cells[c]
	return ok && !cell.IsOccupied
}

// OccupiedCount 统计被占用的格子数。
func (g *Grid) OccupiedCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, cell := range g.cells {
		if cell.IsOccupied {
			n++
		}
	}
	return n
}

// UpdateHeight 写入高度（angle 非 nil 时连同坡度），并重算颜色和倾斜；格子上有建筑时只写数据不动外观。
func (g *Grid) UpdateHeight(c Coord, height float64, angle *float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cell, ok := g.cells[c]
	if !ok {
		return ErrOutOfBounds.WithData("coord", c.String())
	}
	cell.Height = height
	cell.Lift = height / liftScale
	if angle != nil {
		cell.Angle = *angle
	}
	if cell.HasBuilding {
		return nil
	}
	cell.Color = HeightColor(height)
	if angle != nil && *angle != 0 {
		cell.Rotation = Tilt(*angle, g.rnd(), g.rnd())
	}
	return nil
}

// SetTerrainMeta 写入光照与地貌类型，不影响外观。
func (g *Grid) SetTerrainMeta(c Coord, illumination float64, zoneType *ZoneType) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cell, ok := g.cells[c]
	if !ok {
		return ErrOutOfBounds.WithData("coord", c.String())
	}
	cell.Illumination = illumination
	cell.ZoneType = zoneType
	return nil
}

// CheckFootprint 校验 anchor+footprint 覆盖的每个格子都存在且空闲，不做任何修改。
func (g *Grid) CheckFootprint(anchor Coord, footprint []Offset) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.checkLocked(anchor, footprint)
}

func (g *Grid) checkLocked(anchor Coord, footprint []Offset) error {
	for _, c := range Cover(anchor, footprint) {
		cell, ok := g.cells[c]
		if !ok {
			return ErrOutOfBounds.WithData("coord", c.String())
		}
		if cell.IsOccupied {
			return ErrCellOccupied.WithData("coord", c.String())
		}
	}
	return nil
}

// Occupy 在同一把锁内复查并标记占用，任一格子不满足时整体不改。
func (g *Grid) Occupy(anchor Coord, footprint []Offset) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkLocked(anchor, footprint); err != nil {
		return err
	}
	for _, c := range Cover(anchor, footprint) {
		cell := g.cells[c]
		cell.IsOccupied = true
		cell.HasBuilding = true
	}
	return nil
}

// Release 释放 footprint 覆盖的格子，不在地图内的坐标忽略。
func (g *Grid) Release(anchor Coord, footprint []Offset) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range Cover(anchor, footprint) {
		if cell, ok := g.cells[c]; ok {
			cell.IsOccupied = false
			cell.HasBuilding = false
		}
	}
}
