package app

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"MoonColony/internal/api"
	"MoonColony/internal/report/domain"
	"MoonColony/internal/report/layout"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// FileName 是报告的固定文件名。
const FileName = "result.pdf"

type ReportUser struct {
	ID   int64
	Name string
}

// Generator 拉数据、排版并保存报告。任何一步失败都不会留下文件。
type Generator struct {
	api    ReportAPI
	newDoc DocumentFactory
	store  Store
	log    Logger
}

func NewGenerator(reportAPI ReportAPI, newDoc DocumentFactory, store Store, log Logger) *Generator {
	if log == nil {
		log = logx.Nop()
	}
	return &Generator{api: reportAPI, newDoc: newDoc, store: store, log: log}
}

// Generate 依次拉取成功度、统计、连接和模块，生成报告并返回文件路径。
func (g *Generator) Generate(ctx context.Context, user ReportUser) (string, error) {
	if user.ID <= 0 {
		return "", errx.ErrReqParamERR.WithMsg("sign in first")
	}
	success, err := g.api.Success(ctx, user.ID)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	stats, err := g.api.Statistics(ctx, user.ID)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	links, err := g.api.Links(ctx, user.ID)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	modules, err := g.api.Modules(ctx, user.ID)
	if err != nil {
		return "", g.fail(ctx, err)
	}

	rc, err := Parse(*success, api.UserInfo{Name: user.Name, Links: links, Modules: modules}, *stats)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	data, pages, err := g.Render(rc)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	path, err := g.store.Save(ctx, FileName, data)
	if err != nil {
		return "", g.fail(ctx, err)
	}
	g.log.WithContext(ctx).Info("report generated",
		zap.Int64("user_id", user.ID), zap.String("path", path), zap.Int("pages", pages), zap.Int("bytes", len(data)))
	return path, nil
}

// Render 把报告画到新文档上并整体输出，返回内容和页数。
func (g *Generator) Render(rc domain.ReportContext) ([]byte, int, error) {
	doc, err := g.newDoc()
	if err != nil {
		return nil, 0, ErrRenderFail.WithCause(err)
	}
	p := layout.NewPaginator(doc)
	if err := p.Render(rc); err != nil {
		return nil, 0, ErrRenderFail.WithData("page", p.Pages()+1).WithCause(err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, ErrRenderFail.WithCause(err)
	}
	return buf.Bytes(), p.Pages(), nil
}

func (g *Generator) fail(ctx context.Context, err error) error {
	logx.ReportErrorWithLoggerContext(ctx, g.log, "report.generate", err, errx.IsSys(err))
	return err
}
