package api

import (
	"context"
	"net/http"
	"strconv"

	"MoonColony/modules/kit/errx"
)

// Login 用邮箱密码登录，返回完整用户状态。后端对错误凭据回 200 空体（或 null），这里当作拒绝。
func (c *Client) Login(ctx context.Context, cred Credentials) (*UserInfo, error) {
	if cred.Email == "" || cred.Password == "" {
		return nil, errx.ErrReqParamERR.WithMsg("email and password are required")
	}
	var out UserInfo
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/user", body: cred, out: &out}); err != nil {
		return nil, err
	}
	if out.ID <= 0 {
		return nil, errx.ErrRemoteRejected.WithMsg("wrong email or password").WithData("path", "/user")
	}
	return &out, nil
}

// Register 创建账号，返回新用户 id。
func (c *Client) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return 0, errx.ErrReqParamERR.WithMsg("name, email and password are required")
	}
	var id int64
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/userCreate", body: req, out: &id}); err != nil {
		return 0, err
	}
	return id, nil
}

// Statistics 取报告用的统计快照。
func (c *Client) Statistics(ctx context.Context, userID int64) (*Statistics, error) {
	var out Statistics
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/user/" + id(userID), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateColony 为用户初始化殖民地，返回初始状态。
func (c *Client) CreateColony(ctx context.Context, userID int64) (*UserInfo, error) {
	var out UserInfo
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/colony", body: userID, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteColony(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/colony/" + id(userID)})
	return err
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
