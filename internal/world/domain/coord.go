package domain

import "fmt"

// Coord 是网格坐标。Z 是客户端的纵向轴，后端把它叫作 y，转换只发生在 API 边界。
type Coord struct {
	X int
	Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Z)
}

// Offset 是建筑占地相对锚点格子的偏移。
type Offset struct {
	DX int `yaml:"dx" json:"dx"`
	DZ int `yaml:"dz" json:"dz"`
}

func (c Coord) Add(o Offset) Coord {
	return Coord{X: c.X + o.DX, Z: c.Z + o.DZ}
}

// Cover 返回 anchor 按 footprint 展开后覆盖的全部格子，顺序与 footprint 一致。
// footprint 为空时按 1x1 处理，只覆盖锚点。
func Cover(anchor Coord, footprint []Offset) []Coord {
	if len(footprint) == 0 {
		return []Coord{anchor}
	}
	out := make([]Coord, 0, len(footprint))
	for _, o := range footprint {
		out = append(out, anchor.Add(o))
	}
	return out
}
