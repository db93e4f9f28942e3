package domain

// ZoneType 是分区地貌类型，后端给什么存什么。
type ZoneType string

type Vec3 struct {
	X, Y, Z float64
}

// RGB 分量都在 [0,1]。
type RGB struct {
	R, G, B float64
}

// Euler 只记录会变的两个轴，Y 轴恒为 0。
type Euler struct {
	X, Z float64
}

// Cell 是一个地图格子的全部状态：地形数据、占用标记和渲染用的派生属性。
type Cell struct {
	Coord        Coord
	Height       float64
	Angle        float64
	Illumination float64
	ZoneType     *ZoneType
	IsOccupied   bool
	HasBuilding  bool

	Position Vec3
	Lift     float64
	Color    RGB
	Rotation Euler
}
