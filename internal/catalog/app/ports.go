package app

import (
	"context"

	"MoonColony/internal/catalog/domain"
	"MoonColony/modules/kit/logx"
)

// TypeSource 提供模块类型列表。
type TypeSource interface {
	ModuleTypes(ctx context.Context) ([]domain.ModuleType, error)
}

// LayoutSource 按枚举名提供占地与资源流。
type LayoutSource func() (map[string]domain.Layout, error)

type Logger = logx.Logger
