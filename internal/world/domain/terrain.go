package domain

// DefaultIllumination 是后端没给光照时格子使用的值。
const DefaultIllumination = 50.0

// TerrainCell 是一个格子的地形数据，坐标已是客户端坐标。
type TerrainCell struct {
	Coord  Coord   `json:"coord"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// ZoneTerrain 是一个分区的整片地形。
type ZoneTerrain struct {
	ZoneID       int           `json:"zone_id"`
	Type         ZoneType      `json:"type"`
	Illumination float64       `json:"illumination"`
	Cells        []TerrainCell `json:"cells"`
}

// Clone 返回深拷贝，缓存对外只给副本。
func (t ZoneTerrain) Clone() ZoneTerrain {
	out := t
	out.Cells = make([]TerrainCell, len(t.Cells))
	copy(out.Cells, t.Cells)
	return out
}
