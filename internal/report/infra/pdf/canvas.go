// Package pdf 用 go-pdf/fpdf 实现报告画布，并把结果原子地写到磁盘。
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"

	reportapp "MoonColony/internal/report/app"
	"MoonColony/internal/report/layout"
)

const utf8Family = "report"

type Options struct {
	// FontPath 指向 UTF-8 TTF 字体，为空时使用内置 Helvetica（cp1252）。
	FontPath string
	// LogoPath 为空时页眉不画 logo。
	LogoPath string
}

// Canvas 是 A4 纵向、毫米单位的 fpdf 画布。fpdf 内部累积错误，每个方法都把它带出来。
type Canvas struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	logo   string
}

func NewCanvas(opts Options) (*Canvas, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	c := &Canvas{pdf: pdf, logo: opts.LogoPath}
	if opts.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", opts.FontPath)
		c.family = utf8Family
		c.tr = func(s string) string { return s }
	} else {
		c.family = "Helvetica"
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetFont(c.family, "", layout.TableSize)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return c, nil
}

// Factory 返回给 Generator 用的文档工厂。
func Factory(opts Options) reportapp.DocumentFactory {
	return func() (reportapp.Document, error) {
		return NewCanvas(opts)
	}
}

func (c *Canvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *Canvas) AddPage() error {
	c.pdf.AddPage()
	return c.pdf.Error()
}

func (c *Canvas) Logo(x, y, w, h float64) error {
	if c.logo == "" {
		return nil
	}
	c.pdf.ImageOptions(c.logo, x, y, w, h, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	return c.pdf.Error()
}

func (c *Canvas) Text(x, y float64, s string, style layout.TextStyle) error {
	s = c.tr(s)
	c.pdf.SetFontSize(style.Size)
	c.pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	if style.Align == layout.AlignRight {
		x -= c.pdf.GetStringWidth(s)
	}
	c.pdf.Text(x, y, s)
	return c.pdf.Error()
}

func (c *Canvas) Line(x1, y1, x2, y2, width float64, color layout.Color) error {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y1, x2, y2)
	return c.pdf.Error()
}

func (c *Canvas) Row(x, y float64, cells []string, widths []float64, style layout.RowStyle) error {
	c.pdf.SetFontSize(style.Size)
	c.pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	fill := style.Fill != nil
	if fill {
		c.pdf.SetFillColor(style.Fill.R, style.Fill.G, style.Fill.B)
	}
	cx := x
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = c.tr(cells[i])
		}
		c.pdf.SetXY(cx, y)
		c.pdf.CellFormat(w, style.Height, text, "", 0, "LM", fill, 0, "")
		cx += w
	}
	return c.pdf.Error()
}

func (c *Canvas) TextWidth(s string, size float64) float64 {
	c.pdf.SetFontSize(size)
	return c.pdf.GetStringWidth(c.tr(s))
}

// Output 输出完整文档。
func (c *Canvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
