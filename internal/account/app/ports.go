package app

import (
	"context"
	"time"

	"MoonColony/internal/account/domain"
	"MoonColony/internal/api"
	"MoonColony/modules/kit/logx"
)

// UserAPI 是后端的账号接口。
type UserAPI interface {
	Login(ctx context.Context, cred api.Credentials) (*api.UserInfo, error)
	Register(ctx context.Context, req api.RegisterRequest) (int64, error)
}

// SessionRepo 保存本机唯一的登录会话。Load 在没有会话时返回 domain.ErrSessionNotFound。
type SessionRepo interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context) error
}

type Clock func() time.Time

type Logger = logx.Logger
