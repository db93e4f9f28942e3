// Package remote 把后端地形接口适配成 world 的 TerrainSource。
package remote

import (
	"context"

	"MoonColony/internal/api"
	"MoonColony/internal/world/domain"
)

type TerrainAPI interface {
	ZoneTerrain(ctx context.Context, zone int) (*api.ZoneTerrain, error)
}

type TerrainSource struct {
	api TerrainAPI
}

func NewTerrainSource(a TerrainAPI) *TerrainSource {
	return &TerrainSource{api: a}
}

// ZoneTerrain 拉取分区地形，y 在这里换回 z，缺省光照补为 50。
func (s *TerrainSource) ZoneTerrain(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	raw, err := s.api.ZoneTerrain(ctx, zoneID)
	if err != nil {
		return domain.ZoneTerrain{}, err
	}
	out := domain.ZoneTerrain{
		ZoneID:       zoneID,
		Type:         domain.ZoneType(raw.Type),
		Illumination: domain.DefaultIllumination,
		Cells:        make([]domain.TerrainCell, 0, len(raw.Cells)),
	}
	if raw.Illumination != nil {
		out.Illumination = *raw.Illumination
	}
	for _, c := range raw.Cells {
		out.Cells = append(out.Cells, domain.TerrainCell{
			Coord:  api.FromWire(api.WireCoord{X: c.X, Y: c.Y}),
			Height: c.Height,
			Angle:  c.Angle,
		})
	}
	return out, nil
}
