package stub

import (
	"fmt"
	"math"

	"MoonColony/internal/api"
	"MoonColony/internal/report/domain"
)

// 合成地形：同一 (zone, x, y) 永远得到同一组高度与坡度。
const (
	flatSlope    = 2.5
	flatArea     = 150.0
	roughArea    = 40.0
	baseLatitude = 87.0
)

var zoneTypes = [domain.ZoneCount]string{"Plain", "Plain", "Height", "Height", "Lowland", "Lowland"}

func validZone(zone int) bool {
	return zone >= 0 && zone < domain.ZoneCount
}

func height(zone, x, y int) float64 {
	fx, fy := float64(x), float64(y)
	h := 1000*math.Sin(fx*0.3+float64(zone))*math.Cos(fy*0.2) + float64(zone-2)*400
	return math.Round(h*100) / 100
}

func angle(zone, x, y int) float64 {
	a := math.Abs(math.Sin(float64(x)*0.7+float64(y)*0.3+float64(zone)*0.1)) * 6
	if x == 0 && y == 0 {
		a = 0
	}
	return math.Round(a*100) / 100
}

func illumination(zone int) *float64 {
	if zone == 0 {
		return nil
	}
	v := 40 + float64(zone)*5
	return &v
}

func (b *Backend) zoneTerrain(zone int) api.ZoneTerrain {
	cells := make([]api.TerrainCell, 0, b.grid*b.grid)
	for x := 0; x < b.grid; x++ {
		for y := 0; y < b.grid; y++ {
			cells = append(cells, api.TerrainCell{X: x, Y: y, Height: height(zone, x, y), Angle: angle(zone, x, y)})
		}
	}
	return api.ZoneTerrain{Type: zoneTypes[zone], Illumination: illumination(zone), Cells: cells}
}

func cellTerrain(zone, x, y int) api.CellTerrain {
	a := angle(zone, x, y)
	area := roughArea
	if a < flatSlope {
		area = flatArea
	}
	return api.CellTerrain{Slope: a, FlatArea: area}
}

func suitability(zone, x, y int) float64 {
	return math.Max(0, 100-angle(zone, x, y)*15)
}

func lunarCoordinates(zone, x, y int) api.LunarCoordinates {
	lat := -(baseLatitude + float64(zone)*0.4 + float64(y)*0.001)
	lon := 50 + float64(zone)*15 + float64(x)*0.001
	return api.LunarCoordinates{
		Latitude:     dms(-lat, "S"),
		Longitude:    dms(lon, "E"),
		Zone:         domain.ZoneNames[zone],
		RawLatitude:  lat,
		RawLongitude: lon,
	}
}

func dms(v float64, hemi string) string {
	deg := int(v)
	rest := (v - float64(deg)) * 60
	mins := int(rest)
	secs := int(math.Round((rest - float64(mins)) * 60))
	if secs == 60 {
		mins, secs = mins+1, 0
	}
	return fmt.Sprintf("%d°%d'%d\"%s", deg, mins, secs, hemi)
}
