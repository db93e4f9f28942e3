package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"MoonColony/internal/api"
	catalogapp "MoonColony/internal/catalog/app"
	catalog "MoonColony/internal/catalog/domain"
	"MoonColony/internal/colony/domain"
	world "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
)

type fakeCatalog map[int]catalog.ModuleType

func (c fakeCatalog) Get(id int) (catalog.ModuleType, error) {
	mt, ok := c[id]
	if !ok {
		return catalog.ModuleType{}, catalogapp.ErrUnknownModuleType.WithData("module_type", id)
	}
	return mt, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		0:  {ID: 0, Name: "LIVE_MODULE_X", Cost: 9500, Footprint: []world.Offset{{DX: 0, DZ: 0}, {DX: 1, DZ: 0}}},
		12: {ID: 12, Name: "SOLAR_POWER_PLANT", Cost: 900},
		14: {ID: 14, Name: "COSMODROME", Cost: 900, Footprint: []world.Offset{{DX: 0, DZ: 0}, {DX: 1, DZ: 0}, {DX: 0, DZ: 1}, {DX: 1, DZ: 1}}},
		5:  {ID: 5, Name: "PLANTATION", Cost: 42000},
	}
}

type fakeModuleAPI struct {
	mu sync.Mutex

	check     *api.CheckedPlace
	checkErr  error
	createID  int64
	createErr error
	deleteErr error
	terrain   *api.CellTerrain
	modules   []api.ModuleDTO

	checkCalls   int
	createCalls  int
	deleteCalls  int
	terrainCalls int
	lastPlace    api.ModulePlace
	deleted      []int64

	// block 非 nil 时 CheckPlacement 会等它关闭，用来制造并发放置。
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeModuleAPI) CheckPlacement(ctx context.Context, p api.ModulePlace, zone *int) (*api.CheckedPlace, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls++
	f.lastPlace = p
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	if f.check == nil {
		return &api.CheckedPlace{Possible: true}, nil
	}
	return f.check, nil
}

func (f *fakeModuleAPI) CreateModule(ctx context.Context, p api.ModulePlace) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	return f.createID, f.createErr
}

func (f *fakeModuleAPI) DeleteModule(ctx context.Context, userID, moduleID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, moduleID)
	return nil
}

func (f *fakeModuleAPI) Modules(ctx context.Context, userID int64) ([]api.ModuleDTO, error) {
	return f.modules, nil
}

func (f *fakeModuleAPI) CellTerrain(ctx context.Context, zone int, at world.Coord) (*api.CellTerrain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terrainCalls++
	if f.terrain == nil {
		return nil, errx.ErrUnavailable
	}
	return f.terrain, nil
}

type fixture struct {
	svc      *PlacementService
	grid     *world.Grid
	ledger   *domain.ResourceLedger
	registry *domain.Registry
	api      *fakeModuleAPI
	events   []domain.Event
}

func newFixture(t *testing.T, fake *fakeModuleAPI) *fixture {
	t.Helper()
	grid, err := world.Generate(6, 1)
	if err != nil {
		t.Fatalf("generate grid: %v", err)
	}
	f := &fixture{grid: grid, ledger: domain.NewResourceLedger(), registry: domain.NewRegistry(), api: fake}
	events := domain.NewEvents()
	events.Subscribe(func(ev domain.Event) { f.events = append(f.events, ev) })
	f.svc = NewPlacementService(grid, f.ledger, f.registry, testCatalog(), fake, events, nil)
	return f
}

func TestPlace_成功后占格登记并扣费(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 77})

	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ZoneID: 2, ModuleTypeID: 0, Anchor: world.Coord{X: 1, Z: 4}})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if a.State != domain.Placed || a.ServerID == nil || *a.ServerID != 77 {
		t.Fatalf("期望 Placed 且带 server id, got=%+v", a)
	}
	want := []domain.AttemptState{domain.Selecting, domain.Validating, domain.Committing, domain.Placed}
	if len(a.History) != len(want) {
		t.Fatalf("状态轨迹不符: %v", a.History)
	}
	if got := f.ledger.Value(domain.ResourceConstruction); got != 100000-9500 {
		t.Fatalf("期望扣除 9500, got=%v", got)
	}
	for _, c := range []world.Coord{{X: 1, Z: 4}, {X: 2, Z: 4}} {
		cell, _ := f.grid.Cell(c)
		if !cell.IsOccupied || !cell.HasBuilding {
			t.Fatalf("期望 %v 被占用", c)
		}
	}
	if b, ok := f.registry.At(world.Coord{X: 2, Z: 4}); !ok || b.Anchor != (world.Coord{X: 1, Z: 4}) {
		t.Fatalf("期望成员格能查到锚点建筑, got=%+v ok=%v", b, ok)
	}
	if f.api.lastPlace.Y != 4 || f.api.lastPlace.IDZone != 2 {
		t.Fatalf("期望请求用 y=4 zone=2, got=%+v", f.api.lastPlace)
	}
	if len(f.events) != 1 || f.events[0].Kind != domain.BuildingPlaced {
		t.Fatalf("期望发布 BuildingPlaced, got=%+v", f.events)
	}
}

func TestPlace_余额不足时不发请求且账本不变(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 1})
	_ = f.ledger.Set(domain.ResourceConstruction, 1000)

	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 5, Anchor: world.Coord{X: 0, Z: 0}})
	if !errors.Is(err, domain.ErrInsufficientResource) {
		t.Fatalf("期望 ErrInsufficientResource, got=%v", err)
	}
	if a.State != domain.Rejected {
		t.Fatalf("期望 Rejected, got=%v", a.State)
	}
	if a.Reason != "insufficient materials, have 1000, need 42000" {
		t.Fatalf("提示文案不符: %q", a.Reason)
	}
	if f.api.checkCalls+f.api.createCalls != 0 {
		t.Fatalf("期望不发任何远程请求")
	}
	if got := f.ledger.Value(domain.ResourceConstruction); got != 1000 {
		t.Fatalf("期望账本不变, got=%v", got)
	}
}

func TestPlace_占地重叠时不扣费不改格子(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 5})
	if _, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 12, Anchor: world.Coord{X: 2, Z: 2}}); err != nil {
		t.Fatalf("第一次放置失败: %v", err)
	}
	before := f.ledger.Value(domain.ResourceConstruction)
	occupied := f.grid.OccupiedCount()

	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 0, Anchor: world.Coord{X: 1, Z: 2}})
	if !errors.Is(err, world.ErrCellOccupied) {
		t.Fatalf("期望 ErrCellOccupied, got=%v", err)
	}
	if a.State != domain.Rejected || a.Reason != "cell occupied" {
		t.Fatalf("期望 Rejected/cell occupied, got=%v %q", a.State, a.Reason)
	}
	if f.ledger.Value(domain.ResourceConstruction) != before || f.grid.OccupiedCount() != occupied {
		t.Fatalf("期望账本与格子都不变")
	}
	if f.api.checkCalls != 1 {
		t.Fatalf("期望第二次不发请求, checkCalls=%d", f.api.checkCalls)
	}
}

func TestPlace_越界与未知类型(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 5})

	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 0, Anchor: world.Coord{X: 5, Z: 0}})
	if !errors.Is(err, world.ErrOutOfBounds) || a.Reason != "out of bounds" {
		t.Fatalf("期望越界, got=%v %q", err, a.Reason)
	}
	a, err = f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 99, Anchor: world.Coord{}})
	if !errors.Is(err, catalogapp.ErrUnknownModuleType) || a.Reason != "unknown module type" {
		t.Fatalf("期望未知类型, got=%v %q", err, a.Reason)
	}
	if errx.IsSys(err) {
		t.Fatalf("校验失败应为业务类错误")
	}
}

func TestPlace_后端校验否定时用后端文案(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{check: &api.CheckedPlace{Possible: false, Message: "too steep"}})
	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 12, Anchor: world.Coord{}})
	if !errors.Is(err, ErrPlacementRejected) || a.Reason != "too steep" {
		t.Fatalf("期望后端文案, got=%v %q", err, a.Reason)
	}
	if f.api.createCalls != 0 {
		t.Fatalf("校验否定后不应创建")
	}

	f = newFixture(t, &fakeModuleAPI{check: &api.CheckedPlace{Possible: false}})
	a, _ = f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 12, Anchor: world.Coord{}})
	if a.Reason != "placement not possible" {
		t.Fatalf("期望通用文案, got=%q", a.Reason)
	}
}

func TestPlace_创建失败时回滚账本(t *testing.T) {
	cases := []struct {
		name string
		api  *fakeModuleAPI
		want error
	}{
		{"远程报错", &fakeModuleAPI{createErr: errx.ErrUnavailable}, errx.ErrUnavailable},
		{"返回0", &fakeModuleAPI{createID: 0}, ErrCreateNotConfirmed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.api)
			before := f.ledger.Value(domain.ResourceConstruction)

			a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 0, Anchor: world.Coord{X: 0, Z: 0}})
			if !errors.Is(err, tc.want) {
				t.Fatalf("期望 %v, got=%v", tc.want, err)
			}
			if a.State != domain.RolledBack {
				t.Fatalf("期望 RolledBack, got=%v", a.State)
			}
			if got := f.ledger.Value(domain.ResourceConstruction); got != before {
				t.Fatalf("期望账本恢复为 %v, got=%v", before, got)
			}
			if f.grid.OccupiedCount() != 0 || f.registry.Len() != 0 {
				t.Fatalf("期望没有格子被占用")
			}
			if len(f.events) != 0 {
				t.Fatalf("回滚不应发布事件")
			}
		})
	}
}

func TestPlace_航天港地形不满足时拒绝(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 9, terrain: &api.CellTerrain{Slope: 3.1, FlatArea: 400}})
	a, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 14, Anchor: world.Coord{X: 1, Z: 1}})
	if !errors.Is(err, ErrPlacementRejected) || a.State != domain.Rejected {
		t.Fatalf("期望地形拒绝, got=%v state=%v", err, a.State)
	}
	if f.api.checkCalls != 0 {
		t.Fatalf("地形不满足时不应再做通用校验")
	}

	// 查询失败同样算拒绝，不算一般错误
	f = newFixture(t, &fakeModuleAPI{createID: 9})
	a, err = f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 14, Anchor: world.Coord{X: 1, Z: 1}})
	if !errors.Is(err, ErrPlacementRejected) || a.State != domain.Rejected {
		t.Fatalf("期望查询失败归为拒绝, got=%v state=%v", err, a.State)
	}

	f = newFixture(t, &fakeModuleAPI{createID: 9, terrain: &api.CellTerrain{Slope: 2.5, FlatArea: 100}})
	a, err = f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 14, Anchor: world.Coord{X: 1, Z: 1}})
	if err != nil || a.State != domain.Placed {
		t.Fatalf("边界值应允许, got=%v state=%v", err, a.State)
	}
	if f.grid.OccupiedCount() != 4 {
		t.Fatalf("期望 2x2 占 4 格, got=%d", f.grid.OccupiedCount())
	}
}

func TestPlace_同一用户并发时拒绝第二个(t *testing.T) {
	fake := &fakeModuleAPI{createID: 1, block: make(chan struct{}), entered: make(chan struct{})}
	f := newFixture(t, fake)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 12, Anchor: world.Coord{X: 0, Z: 0}})
		done <- err
	}()
	<-fake.entered

	_, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 12, Anchor: world.Coord{X: 3, Z: 3}})
	if !errors.Is(err, ErrPlacementInFlight) {
		t.Fatalf("期望 ErrPlacementInFlight, got=%v", err)
	}
	close(fake.block)
	if err := <-done; err != nil {
		t.Fatalf("第一个放置应成功, err=%v", err)
	}
}

func TestRemove_释放全部占地格子(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 11, terrain: &api.CellTerrain{Slope: 1, FlatArea: 500}})
	if _, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 14, Anchor: world.Coord{X: 2, Z: 2}}); err != nil {
		t.Fatalf("place err=%v", err)
	}

	b, err := f.svc.Remove(context.Background(), 3, world.Coord{X: 3, Z: 3})
	if err != nil {
		t.Fatalf("remove err=%v", err)
	}
	if b.Anchor != (world.Coord{X: 2, Z: 2}) {
		t.Fatalf("期望按成员格找到锚点建筑, got=%+v", b.Anchor)
	}
	if f.grid.OccupiedCount() != 0 || f.registry.Len() != 0 {
		t.Fatalf("期望全部格子释放")
	}
	if len(f.api.deleted) != 1 || f.api.deleted[0] != 11 {
		t.Fatalf("期望删除后端模块 11, got=%v", f.api.deleted)
	}
	if f.events[len(f.events)-1].Kind != domain.BuildingRemoved {
		t.Fatalf("期望发布 BuildingRemoved")
	}
}

func TestRemove_后端失败时本地不动(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{createID: 11})
	if _, err := f.svc.Place(context.Background(), PlaceRequest{UserID: 3, ModuleTypeID: 0, Anchor: world.Coord{X: 0, Z: 0}}); err != nil {
		t.Fatalf("place err=%v", err)
	}
	f.api.deleteErr = errx.ErrUnavailable

	if _, err := f.svc.Remove(context.Background(), 3, world.Coord{X: 0, Z: 0}); !errors.Is(err, errx.ErrUnavailable) {
		t.Fatalf("期望透传后端错误, got=%v", err)
	}
	if f.grid.OccupiedCount() != 2 || f.registry.Len() != 1 {
		t.Fatalf("期望本地状态不变")
	}
	if _, err := f.svc.Remove(context.Background(), 3, world.Coord{X: 5, Z: 5}); !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("期望 ErrBuildingNotFound, got=%v", err)
	}
}

func TestRemove_没有ServerID时不请求后端(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{})
	if err := f.registry.Add(domain.Building{Anchor: world.Coord{X: 1, Z: 1}, Footprint: []world.Offset{{DX: 0, DZ: 0}}}); err != nil {
		t.Fatal(err)
	}
	if err := f.grid.Occupy(world.Coord{X: 1, Z: 1}, []world.Offset{{DX: 0, DZ: 0}}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Remove(context.Background(), 3, world.Coord{X: 1, Z: 1}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if f.api.deleteCalls != 0 {
		t.Fatalf("期望不请求后端")
	}
	if !f.grid.IsFree(world.Coord{X: 1, Z: 1}) {
		t.Fatalf("期望格子释放")
	}
}

func TestRemove_空占地按锚点释放(t *testing.T) {
	f := newFixture(t, &fakeModuleAPI{})
	at := world.Coord{X: 2, Z: 2}
	if err := f.registry.Add(domain.Building{Anchor: at}); err != nil {
		t.Fatal(err)
	}
	if err := f.grid.Occupy(at, nil); err != nil {
		t.Fatal(err)
	}
	if f.grid.IsFree(at) {
		t.Fatalf("期望空占地也占住锚点")
	}
	if _, err := f.svc.Remove(context.Background(), 3, at); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, ok := f.svc.BuildingAt(at); ok {
		t.Fatalf("期望登记已删除")
	}
	c, _ := f.grid.Cell(at)
	if c.IsOccupied || c.HasBuilding {
		t.Fatalf("期望锚点释放, got=%+v", c)
	}
	if f.grid.OccupiedCount() != 0 {
		t.Fatalf("期望没有占用格子, got=%d", f.grid.OccupiedCount())
	}
}

func TestSyncFromServer_重建登记表(t *testing.T) {
	fake := &fakeModuleAPI{modules: []api.ModuleDTO{
		{ID: 1, IDZone: 2, ModuleType: 0, X: 0, Y: 5},
		{ID: 2, IDZone: 2, ModuleType: 12, X: 4, Y: 1},
		{ID: 3, IDZone: 2, ModuleType: 12, X: 1, Y: 5}, // 与 1 号重叠
	}}
	f := newFixture(t, fake)
	_ = f.registry.Add(domain.Building{Anchor: world.Coord{X: 3, Z: 3}})
	_ = f.grid.Occupy(world.Coord{X: 3, Z: 3}, []world.Offset{{DX: 0, DZ: 0}})

	n, err := f.svc.SyncFromServer(context.Background(), 3)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if n != 2 {
		t.Fatalf("期望登记 2 个, got=%d", n)
	}
	if !f.grid.IsFree(world.Coord{X: 3, Z: 3}) {
		t.Fatalf("期望旧建筑被清掉")
	}
	b, ok := f.svc.BuildingAt(world.Coord{X: 1, Z: 5})
	if !ok || b.ServerID == nil || *b.ServerID != 1 {
		t.Fatalf("期望 (1,5) 属于 1 号模块, got=%+v", b)
	}
	if b.Meta.ZoneID != 2 {
		t.Fatalf("期望 zone=2, got=%d", b.Meta.ZoneID)
	}
	if len(f.svc.Buildings()) != 2 {
		t.Fatalf("期望 2 个建筑")
	}
}
