package layout

import (
	"fmt"
	"unicode/utf8"

	"MoonColony/internal/report/domain"
)

// 页面几何。
const (
	Padding      = 4.0
	HeaderTop    = 2.0
	LogoW        = 73.0
	LogoH        = 11.0
	CaptionSize  = 12.0
	TitleSize    = 12.0
	TableSize    = 10.0
	RuleWidth    = 0.5
	CellPadding  = 1.8
	RowHeight    = 7.5
	ContentTop   = 28.0
	PairTop      = 25.0
	FooterOffset = 16.0
	// BreakReserve 是页脚之上额外预留的空白，行底越过它就换页。
	BreakReserve = 10.0

	captionLine1 = 8.0
	captionLine2 = 13.0
	headerRule   = 16.0
	titleGap     = 3.0
	tableGap     = 8.0

	maxNameRunes = 20
)

// Paginator 持有一份文档的光标和页码。每份文档用一个新的 Paginator。
type Paginator struct {
	c    Canvas
	rc   domain.ReportContext
	w, h float64
	y    float64
	page int
}

func NewPaginator(c Canvas) *Paginator {
	w, h := c.PageSize()
	return &Paginator{c: c, w: w, h: h}
}

// Pages 返回已画完页脚的页数。
func (p *Paginator) Pages() int {
	return p.page
}

// Render 画完整份报告：第 1 页成功度与资源，第 2 页分区连接，之后每页两张表。
func (p *Paginator) Render(rc domain.ReportContext) error {
	if len(rc.Tables) != domain.TableCount {
		return fmt.Errorf("report: expected %d tables, got %d", domain.TableCount, len(rc.Tables))
	}
	p.rc = rc

	if err := p.newPage(ContentTop); err != nil {
		return err
	}
	for _, t := range rc.Tables[:2] {
		if err := p.table(t, false, ContentTop); err != nil {
			return err
		}
	}
	if err := p.footer(); err != nil {
		return err
	}

	if err := p.newPage(ContentTop); err != nil {
		return err
	}
	if err := p.table(rc.Tables[2], true, ContentTop); err != nil {
		return err
	}
	if err := p.footer(); err != nil {
		return err
	}

	for i := 3; i < len(rc.Tables); i += 2 {
		if err := p.newPage(ContentTop); err != nil {
			return err
		}
		for _, t := range rc.Tables[i : i+2] {
			if err := p.table(t, true, PairTop); err != nil {
				return err
			}
		}
		if err := p.footer(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Paginator) newPage(top float64) error {
	if err := p.c.AddPage(); err != nil {
		return err
	}
	if err := p.header(); err != nil {
		return err
	}
	p.y = top
	return nil
}

// TruncateName 超过 20 个字符时截断并加 "..."。
func TruncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameRunes {
		return name
	}
	return string([]rune(name)[:maxNameRunes]) + "..."
}

func (p *Paginator) header() error {
	if err := p.c.Logo(Padding, HeaderTop, LogoW, LogoH); err != nil {
		return err
	}
	caption := TextStyle{Size: CaptionSize, Color: Grey, Align: AlignRight}
	if err := p.c.Text(p.w-Padding, captionLine1, "Made by user "+TruncateName(p.rc.UserName), caption); err != nil {
		return err
	}
	if err := p.c.Text(p.w-Padding, captionLine2, fmt.Sprintf("in-game days: %d", p.rc.CountDay), caption); err != nil {
		return err
	}
	return p.c.Line(Padding, headerRule, p.w-Padding, headerRule, RuleWidth, Grey)
}

// footer 画页脚并推进页码；页码全文档递增，从 01 开始。
func (p *Paginator) footer() error {
	rule := p.h - FooterOffset
	if err := p.c.Line(Padding, rule, p.w-Padding, rule, RuleWidth, Grey); err != nil {
		return err
	}
	p.page++
	base := rule + 12
	style := TextStyle{Size: CaptionSize, Color: Grey}
	if err := p.c.Text(Padding, base, "Page", style); err != nil {
		return err
	}
	style.Align = AlignRight
	return p.c.Text(p.w-Padding, base, PageLabel(p.page), style)
}

// PageLabel 把页码补到至少两位。
func PageLabel(n int) string {
	return fmt.Sprintf("%02d", n)
}

// table 画标题和表格，结束后画分隔线。行底越过页脚预留区时先画页脚、换页、重画页眉，
// 光标回到 top 并重复表头。
func (p *Paginator) table(t domain.Table, withHead bool, top float64) error {
	if err := p.c.Text(Padding, p.y, t.Name, TextStyle{Size: TitleSize, Color: Black}); err != nil {
		return err
	}
	p.y += titleGap

	widths := p.columnWidths(t, withHead)
	head := RowStyle{Size: TableSize, Color: Grey, Fill: &White, Height: RowHeight}
	drawHead := func() error {
		if !withHead || len(t.Headers) == 0 {
			return nil
		}
		if err := p.c.Row(Padding, p.y, t.Headers, widths, head); err != nil {
			return err
		}
		p.y += RowHeight
		return nil
	}
	if err := drawHead(); err != nil {
		return err
	}

	for i, row := range t.Body {
		if p.y+RowHeight > p.h-FooterOffset-BreakReserve {
			if err := p.footer(); err != nil {
				return err
			}
			if err := p.newPage(top); err != nil {
				return err
			}
			if err := drawHead(); err != nil {
				return err
			}
		}
		style := RowStyle{Size: TableSize, Color: Black, Height: RowHeight}
		if i%2 == 0 {
			style.Fill = &Stripe
		}
		if err := p.c.Row(Padding, p.y, pad(row, len(widths)), widths, style); err != nil {
			return err
		}
		p.y += RowHeight
	}

	p.y += tableGap
	if err := p.c.Line(Padding, p.y, p.w-Padding, p.y, RuleWidth, Grey); err != nil {
		return err
	}
	p.y += tableGap
	return nil
}

// columnWidths 按内容收缩列宽，总宽不超过页面可用宽度时保持原样，超出则等比压缩。
func (p *Paginator) columnWidths(t domain.Table, withHead bool) []float64 {
	cols := 0
	if withHead {
		cols = len(t.Headers)
	}
	for _, r := range t.Body {
		if len(r) > cols {
			cols = len(r)
		}
	}
	widths := make([]float64, cols)
	measure := func(cells []string) {
		for i, s := range cells {
			if w := p.c.TextWidth(s, TableSize) + 2*CellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}
	if withHead {
		measure(t.Headers)
	}
	for _, r := range t.Body {
		measure(r)
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if avail := p.w - 2*Padding; total > avail && total > 0 {
		k := avail / total
		for i := range widths {
			widths[i] *= k
		}
	}
	return widths
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
