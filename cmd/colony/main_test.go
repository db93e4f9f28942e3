package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	colonydomain "MoonColony/internal/colony/domain"
	"MoonColony/internal/shared/idgen"
	transporthttp "MoonColony/internal/shared/transport/http"
	"MoonColony/internal/stub"
	worlddomain "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
)

// writeConf 起一个 stub 后端，并把指向它的配置写进临时目录。
func writeConf(t *testing.T) (cfg, dir string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b, err := stub.NewBackend(stub.Options{GridSize: 8, IDs: idgen.NewSequence(1)})
	require.NoError(t, err)
	srv := transporthttp.NewHttpServer(":0", "/api", nil, nil)
	stub.NewHandler(b, nil).Register(srv.Group())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	dir = t.TempDir()
	conf := fmt.Sprintf(`api:
  base_url: %s/api
  timeout: 5s
map:
  grid_size: 8
  cell_size: 1
  zones: [0, 1]
  snapshot_dir: %s
report:
  output_dir: %s
storage:
  driver: sqlite
  path: %s
log:
  level: error
`, ts.URL, filepath.Join(dir, "snapshots"), dir, filepath.Join(dir, "colony.db"))
	cfg = filepath.Join(dir, "conf.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(conf), 0o644))
	return cfg, dir
}

func run(cfg string, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInts_非数字参数(t *testing.T) {
	got, err := ints([]string{"3", "-1"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, -1}, got)

	_, err = ints([]string{"3", "x"})
	assert.EqualError(t, err, `"x" is not a number`)
}

func TestLinkFromFlags_类型校验(t *testing.T) {
	linkType, linkFrom, linkTo = "power", 1, 4
	l, err := linkFromFlags()
	require.NoError(t, err)
	assert.Equal(t, colonydomain.Link{Type: colonydomain.LinkPower, Zone1: 1, Zone2: 4}, l)

	linkType = "rail"
	_, err = linkFromFlags()
	assert.Error(t, err)
	linkType = "route"
}

func TestColonyCLI_注册建造推进与报告(t *testing.T) {
	cfg, dir := writeConf(t)

	out, err := run(cfg, "register", "-n", "Neil", "-e", "neil@moon", "-p", "pwd")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Signed in as Neil")
	assert.Contains(t, out, "day 0")

	// 会话存在本地库里，下一条命令能恢复
	out, err = run(cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Neil <neil@moon>")

	out, err = run(cfg, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "LIVE_MODULE_X")

	out, err = run(cfg, "place", "0", "2", "3", "--zone", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Placed module")
	assert.Contains(t, out, "materials left 90500")
	// 放置前已把分区 1 的地形写进网格
	c, ok := app.grid.Cell(worlddomain.Coord{X: 0, Z: 0})
	require.True(t, ok)
	assert.InDelta(t, 441.47, c.Height, 0.001)
	assert.Equal(t, 45.0, c.Illumination)

	_, err = run(cfg, "place", "0", "3", "3", "--zone", "1")
	assert.Error(t, err)

	out, err = run(cfg, "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "Living module")

	out, err = run(cfg, "links", "add", "--type", "power", "--from", "0", "--to", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "for 3000 materials")

	out, err = run(cfg, "links")
	require.NoError(t, err)
	assert.Contains(t, out, "power  0 -> 2")

	out, err = run(cfg, "day")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Day 1")
	assert.Contains(t, out, "Water")

	out, err = run(cfg, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1, colony alive")

	out, err = run(cfg, "report")
	require.NoError(t, err, out)
	raw, err := os.ReadFile(filepath.Join(dir, "result.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))

	out, err = run(cfg, "terrain", "export", "--zone", "0")
	require.NoError(t, err, out)
	_, err = os.Stat(filepath.Join(dir, "snapshots", "zone-0.json.zst"))
	assert.NoError(t, err)

	out, err = run(cfg, "remove", "3", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Removed Living module")

	out, err = run(cfg, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	out, err = run(cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, err = run(cfg, "modules")
	assert.True(t, errors.Is(err, errx.ErrReqParamERR))
}

func TestTerrainShow_写入网格并打印格子(t *testing.T) {
	cfg, _ := writeConf(t)

	out, err := run(cfg, "terrain", "show", "0", "0", "--zone", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Zone 3 (Height), 64 cells loaded")
	want := fmt.Sprintf("Cell 0,0: height 541.12, slope 0.00, illumination 55, color %s, free",
		hexColor(worlddomain.HeightColor(541.12)))
	assert.Contains(t, out, want)

	c, ok := app.grid.Cell(worlddomain.Coord{X: 1, Z: 0})
	require.True(t, ok)
	assert.NotEqual(t, 0.0, c.Height)
	assert.Equal(t, worlddomain.HeightColor(c.Height), c.Color)

	_, err = run(cfg, "terrain", "show", "9", "9", "--zone", "3")
	assert.True(t, errors.Is(err, worlddomain.ErrOutOfBounds))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#ff0080", hexColor(worlddomain.RGB{R: 1, G: 0, B: 0.5}))
}

func TestTerrainExport_未配置目录时只存内存(t *testing.T) {
	cfg, dir := writeConf(t)
	raw, err := os.ReadFile(cfg)
	require.NoError(t, err)
	conf := strings.Replace(string(raw), "snapshot_dir: "+filepath.Join(dir, "snapshots"), `snapshot_dir: ""`, 1)
	require.NoError(t, os.WriteFile(cfg, []byte(conf), 0o644))

	out, err := run(cfg, "terrain", "export", "--zone", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Zone 2 (Height): 64 cells -> memory://zone-2")
	_, err = os.Stat(filepath.Join(dir, "snapshots"))
	assert.True(t, os.IsNotExist(err))
}
