package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonColony/internal/api"
	"MoonColony/internal/report/domain"
	"MoonColony/internal/report/layout"
	"MoonColony/modules/kit/errx"
)

type fakeReportAPI struct {
	statsErr error
	calls    []string
}

func (f *fakeReportAPI) Success(ctx context.Context, userID int64) (*api.SuccessMetrics, error) {
	f.calls = append(f.calls, "success")
	s, _, _ := scenario()
	return &s, nil
}

func (f *fakeReportAPI) Statistics(ctx context.Context, userID int64) (*api.Statistics, error) {
	f.calls = append(f.calls, "statistics")
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	_, _, st := scenario()
	return &st, nil
}

func (f *fakeReportAPI) Links(ctx context.Context, userID int64) ([]api.LinkDTO, error) {
	f.calls = append(f.calls, "links")
	return []api.LinkDTO{{Type: api.LinkRoute, IDZone1: 0, IDZone2: 1}}, nil
}

func (f *fakeReportAPI) Modules(ctx context.Context, userID int64) ([]api.ModuleDTO, error) {
	f.calls = append(f.calls, "modules")
	return []api.ModuleDTO{{ID: 1, IDZone: 0, ModuleType: 14, X: 1, Y: 1}}, nil
}

// fakeDoc 只数页数，Output 写一个假的 PDF 头。
type fakeDoc struct {
	pages    int
	failText bool
}

func (d *fakeDoc) PageSize() (float64, float64)             { return 210, 297 }
func (d *fakeDoc) AddPage() error                            { d.pages++; return nil }
func (d *fakeDoc) Logo(x, y, w, h float64) error             { return nil }
func (d *fakeDoc) TextWidth(s string, size float64) float64 { return float64(len(s)) }
func (d *fakeDoc) Line(x1, y1, x2, y2, width float64, color layout.Color) error {
	return nil
}
func (d *fakeDoc) Row(x, y float64, cells []string, widths []float64, style layout.RowStyle) error {
	return nil
}
func (d *fakeDoc) Text(x, y float64, s string, style layout.TextStyle) error {
	if d.failText {
		return errors.New("font missing")
	}
	return nil
}
func (d *fakeDoc) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

type fakeStore struct {
	saved map[string][]byte
}

func (s *fakeStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[name] = data
	return "/tmp/reports/" + name, nil
}

func docFactory(d *fakeDoc) DocumentFactory {
	return func() (Document, error) { return d, nil }
}

func TestGenerate_按顺序拉数据并保存(t *testing.T) {
	a := &fakeReportAPI{}
	doc := &fakeDoc{}
	store := &fakeStore{}
	g := NewGenerator(a, docFactory(doc), store, nil)

	path, err := g.Generate(context.Background(), ReportUser{ID: 7, Name: "neil"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports/result.pdf", path)
	assert.Equal(t, []string{"success", "statistics", "links", "modules"}, a.calls)
	assert.Equal(t, "%PDF-fake", string(store.saved[FileName]))
	assert.Equal(t, 8, doc.pages)
}

func TestGenerate_绘制失败不保存(t *testing.T) {
	store := &fakeStore{}
	g := NewGenerator(&fakeReportAPI{}, docFactory(&fakeDoc{failText: true}), store, nil)

	_, err := g.Generate(context.Background(), ReportUser{ID: 7, Name: "neil"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFail))
	assert.True(t, errx.IsSys(err))
	assert.Empty(t, store.saved)
}

func TestGenerate_拉取失败时不再继续(t *testing.T) {
	a := &fakeReportAPI{statsErr: errx.ErrUnavailable.WithMsg("backend down")}
	store := &fakeStore{}
	g := NewGenerator(a, docFactory(&fakeDoc{}), store, nil)

	_, err := g.Generate(context.Background(), ReportUser{ID: 7})
	assert.True(t, errors.Is(err, errx.ErrUnavailable))
	assert.Equal(t, []string{"success", "statistics"}, a.calls)
	assert.Empty(t, store.saved)
}

func TestGenerate_未登录(t *testing.T) {
	a := &fakeReportAPI{}
	g := NewGenerator(a, docFactory(&fakeDoc{}), &fakeStore{}, nil)
	_, err := g.Generate(context.Background(), ReportUser{})
	assert.True(t, errors.Is(err, errx.ErrReqParamERR))
	assert.Empty(t, a.calls)
}

func TestRender_文档工厂失败(t *testing.T) {
	g := NewGenerator(&fakeReportAPI{}, func() (Document, error) { return nil, errors.New("no font") }, &fakeStore{}, nil)
	_, _, err := g.Render(mustParse(t))
	assert.True(t, errors.Is(err, ErrRenderFail))
}

func mustParse(t *testing.T) domain.ReportContext {
	t.Helper()
	rc, err := Parse(scenario())
	require.NoError(t, err)
	return rc
}
