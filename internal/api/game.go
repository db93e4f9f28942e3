package api

import (
	"context"
	"net/http"
)

// AddDay 推进一天并返回资源增量。
func (c *Client) AddDay(ctx context.Context, userID int64) (*DayChange, error) {
	var out DayChange
	noContent, err := c.do(ctx, request{method: http.MethodGet, path: "/day/" + id(userID), out: &out})
	if err != nil || noContent {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Success(ctx context.Context, userID int64) (*SuccessMetrics, error) {
	var out SuccessMetrics
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/success/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Resources(ctx context.Context, userID int64) ([]ResourceDTO, error) {
	var out []ResourceDTO
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/resources/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateResources(ctx context.Context, userID int64, resources []ResourceDTO) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: "/resources/" + id(userID), body: resources})
	return err
}

func (c *Client) FinishColonization(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/colonization/finish/" + id(userID)})
	return err
}

func (c *Client) ColonizationStatus(ctx context.Context, userID int64) (*ColonizationStatus, error) {
	var out ColonizationStatus
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/colonization/status/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
