package app

import (
	"context"

	"MoonColony/internal/api"
	"MoonColony/modules/kit/logx"
)

// DayAPI 是推进日期和殖民进度相关的后端接口。
type DayAPI interface {
	AddDay(ctx context.Context, userID int64) (*api.DayChange, error)
	ColonizationStatus(ctx context.Context, userID int64) (*api.ColonizationStatus, error)
	FinishColonization(ctx context.Context, userID int64) error
}

// Ledger 接收每日资源增量，下标与后端资源顺序一致。
type Ledger interface {
	ApplyDeltas(deltas []int64)
}

type Logger = logx.Logger
