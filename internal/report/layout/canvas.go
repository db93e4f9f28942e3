// Package layout 把报告表格排到 A4 页面上。这里只管光标、页码和分页，
// 具体怎么画交给 Canvas。单位都是毫米。
package layout

type Color struct {
	R, G, B int
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Grey  = Color{0xA3, 0xA3, 0xA3}
	// Stripe 是表体隔行底色。
	Stripe = Color{245, 245, 245}
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

type TextStyle struct {
	Size  float64
	Color Color
	Align Align
}

// RowStyle 描述一行表格。Fill 为 nil 时不填底色。
type RowStyle struct {
	Size   float64
	Color  Color
	Fill   *Color
	Height float64
}

// Canvas 是绘图后端。任何方法返回错误都会中止整份报告。
type Canvas interface {
	PageSize() (w, h float64)
	AddPage() error
	// Logo 在指定矩形里画 logo，没有 logo 时什么都不画。
	Logo(x, y, w, h float64) error
	// Text 在基线 y 处写一行字；AlignRight 时 x 是右边界。
	Text(x, y float64, s string, style TextStyle) error
	Line(x1, y1, x2, y2, width float64, color Color) error
	// Row 从 (x, y) 起画一行单元格，widths 与 cells 等长。
	Row(x, y float64, cells []string, widths []float64, style RowStyle) error
	TextWidth(s string, size float64) float64
}
