package api

import (
	"context"
	"net/http"
	"strconv"

	"MoonColony/internal/world/domain"
)

func (c *Client) Areas(ctx context.Context) ([]Area, error) {
	var out []Area
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/area", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ZoneTerrain 拉取整个分区的地形（后端坐标）。
func (c *Client) ZoneTerrain(ctx context.Context, zone int) (*ZoneTerrain, error) {
	var out ZoneTerrain
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/area/" + strconv.Itoa(zone) + "/terrain", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Suitability(ctx context.Context, zone int) ([]SuitabilityCell, error) {
	var out []SuitabilityCell
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/area/" + strconv.Itoa(zone) + "/suitability", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// LunarCoordinates 把分区内的格子换算成月面经纬度。
func (c *Client) LunarCoordinates(ctx context.Context, zone int, at domain.Coord) (*LunarCoordinates, error) {
	w := ToWire(at)
	path := "/lunar-coordinates/" + strconv.Itoa(zone) + "/" + strconv.Itoa(w.X) + "/" + strconv.Itoa(w.Y)
	var out LunarCoordinates
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
