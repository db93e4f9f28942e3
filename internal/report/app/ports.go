package app

import (
	"context"
	"io"

	"MoonColony/internal/api"
	"MoonColony/internal/report/layout"
	"MoonColony/modules/kit/logx"
)

// ReportAPI 是生成报告需要的后端数据。
type ReportAPI interface {
	Success(ctx context.Context, userID int64) (*api.SuccessMetrics, error)
	Statistics(ctx context.Context, userID int64) (*api.Statistics, error)
	Links(ctx context.Context, userID int64) ([]api.LinkDTO, error)
	Modules(ctx context.Context, userID int64) ([]api.ModuleDTO, error)
}

// Document 是可以整体输出的画布。
type Document interface {
	layout.Canvas
	Output(w io.Writer) error
}

type DocumentFactory func() (Document, error)

// Store 保存生成好的文件，返回最终路径；要么完整写入，要么什么都不留。
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type Logger = logx.Logger
