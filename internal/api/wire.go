package api

import "MoonColony/internal/world/domain"

// WireCoord 是后端的坐标约定：纵向轴叫 y。
type WireCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToWire 把客户端坐标 (x, z) 转成后端坐标 (x, y)。所有出站请求只能经由这里换轴。
func ToWire(c domain.Coord) WireCoord {
	return WireCoord{X: c.X, Y: c.Z}
}

// FromWire 是 ToWire 的逆变换，所有入站坐标经由这里换回 z。
func FromWire(w WireCoord) domain.Coord {
	return domain.Coord{X: w.X, Z: w.Y}
}
