package api

import (
	"context"
	"net/http"
)

// 连接类型
const (
	LinkPower = 0
	LinkRoute = 1
)

func NewLinkRequest(userID int64, linkType, zone1, zone2 int) LinkRequest {
	return LinkRequest{PrimaryKey: LinkKey{Type: linkType, IDUser: userID, IDZone1: zone1, IDZone2: zone2}}
}

// CreateLink 建立分区连接，返回后端扣除的材料量。
func (c *Client) CreateLink(ctx context.Context, req LinkRequest) (int64, error) {
	var cost int64
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/link", body: req, out: &cost}); err != nil {
		return 0, err
	}
	return cost, nil
}

// DeleteLink 用请求体指定要删除的连接。
func (c *Client) DeleteLink(ctx context.Context, req LinkRequest) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/link", body: req})
	return err
}

func (c *Client) Links(ctx context.Context, userID int64) ([]LinkDTO, error) {
	var out []LinkDTO
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/link/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckLink(ctx context.Context, req LinkRequest) (*LinkCheck, error) {
	var out LinkCheck
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/link/check", body: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptimalLinks 返回后端建议的连接方案。
func (c *Client) OptimalLinks(ctx context.Context, userID int64) ([]LinkDTO, error) {
	var out []LinkDTO
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/link/optimal/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}
