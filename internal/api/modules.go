package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
)

// DefaultZone 是放置校验未指定分区时使用的分区。
const DefaultZone = 1

// NewModulePlace 组装放置请求；坐标在这里从 z 换成 y。
func NewModulePlace(userID int64, moduleType int, at domain.Coord, zone int) ModulePlace {
	w := ToWire(at)
	return ModulePlace{IDUser: userID, ModuleType: moduleType, X: w.X, Y: w.Y, IDZone: zone}
}

func (c *Client) ModuleTypes(ctx context.Context) ([]ModuleTypeDTO, error) {
	var out ModuleTypesResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/module-types", out: &out}); err != nil {
		return nil, err
	}
	return out.ModuleTypes, nil
}

// CheckPlacement 询问后端能否在该处放置。zone 为 nil 时使用 DefaultZone。
func (c *Client) CheckPlacement(ctx context.Context, p ModulePlace, zone *int) (*CheckedPlace, error) {
	p.IDZone = DefaultZone
	if zone != nil {
		p.IDZone = *zone
	}
	var out CheckedPlace
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/check", body: p, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateModule 建造模块，返回后端结果值；0 表示后端未确认。
func (c *Client) CreateModule(ctx context.Context, p ModulePlace) (int64, error) {
	if p.IDUser <= 0 {
		return 0, errx.ErrReqParamERR.WithMsg("user id is required")
	}
	if p.ModuleType < 0 {
		return 0, errx.ErrReqParamERR.WithMsg("module type is required")
	}
	if p.X < 0 || p.Y < 0 {
		return 0, errx.ErrReqParamERR.WithMsg("coordinates are required").
			WithData("x", p.X).WithData("y", p.Y)
	}
	var out int64
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/module", body: p, out: &out}); err != nil {
		return 0, err
	}
	return out, nil
}

func (c *Client) DeleteModule(ctx context.Context, userID, moduleID int64) error {
	q := url.Values{"id": []string{strconv.FormatInt(moduleID, 10)}}
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/module/" + id(userID), query: q})
	return err
}

// Modules 列出用户已建模块（后端坐标）。
func (c *Client) Modules(ctx context.Context, userID int64) ([]ModuleDTO, error) {
	var out []ModuleDTO
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/modules/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Optimality 返回每个模块的地形与布局评分。
func (c *Client) Optimality(ctx context.Context, userID int64) ([]Optimality, error) {
	var out []Optimality
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/module/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ModuleResources(ctx context.Context, moduleID int64) ([]ResourceDTO, error) {
	var out []ResourceDTO
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/module/resources/" + id(moduleID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// CellTerrain 查询单格坡度与平地面积。
func (c *Client) CellTerrain(ctx context.Context, zone int, at domain.Coord) (*CellTerrain, error) {
	w := ToWire(at)
	path := "/area/" + strconv.Itoa(zone) + "/terrain/" + strconv.Itoa(w.X) + "/" + strconv.Itoa(w.Y)
	var out CellTerrain
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
