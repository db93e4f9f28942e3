package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonColony/internal/catalog/domain"
	"MoonColony/internal/catalog/infra/static"
	world "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
)

type fakeSource struct {
	calls atomic.Int32
	types []domain.ModuleType
	err   error
}

func (f *fakeSource) ModuleTypes(context.Context) ([]domain.ModuleType, error) {
	f.calls.Add(1)
	return f.types, f.err
}

func remoteTypes() []domain.ModuleType {
	return []domain.ModuleType{
		{ID: 14, Name: "COSMODROME", Cost: 900},
		{ID: 0, Name: "LIVE_MODULE_X", Cost: 9500, IsLivingModule: true},
		{ID: 12, Name: "SOLAR_POWER_PLANT", Cost: 900},
	}
}

func TestGet_未加载时返回ErrCatalogNotLoaded(t *testing.T) {
	s := NewService(&fakeSource{types: remoteTypes()}, nil, nil, nil)
	_, err := s.Get(0)
	if !errors.Is(err, ErrCatalogNotLoaded) {
		t.Fatalf("期望 ErrCatalogNotLoaded, got=%v", err)
	}
	if _, err := s.All(); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Fatalf("期望 All 同样返回 ErrCatalogNotLoaded, got=%v", err)
	}
}

func TestLoad_并发调用只拉取一次(t *testing.T) {
	remote := &fakeSource{types: remoteTypes()}
	s := NewService(remote, nil, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Load(context.Background())
		}()
	}
	wg.Wait()
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, int32(1), remote.calls.Load())
	assert.True(t, s.Loaded())
}

func TestGet_未知类型(t *testing.T) {
	s := NewService(&fakeSource{types: remoteTypes()}, nil, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Get(99)
	assert.True(t, errors.Is(err, ErrUnknownModuleType))
	assert.False(t, errx.IsSys(err))

	mt, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "LIVE_MODULE_X", mt.Name)
	assert.Equal(t, []world.Offset{{}}, mt.Cells())
}

func TestLoad_后端失败时回退内置表(t *testing.T) {
	remote := &fakeSource{err: errx.ErrUnavailable}
	s := NewService(remote, static.New(), static.Layouts, nil)
	require.NoError(t, s.Load(context.Background()))

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 26)

	cos, err := s.Get(domain.CosmodromeID)
	require.NoError(t, err)
	assert.Len(t, cos.Cells(), 4)
	assert.Equal(t, 30.0, cos.Flow.Consumption["energy"])

	cost, err := s.Cost(5)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"construction": 42000}, cost)
}

func TestLoad_合并layout且按id排序(t *testing.T) {
	s := NewService(&fakeSource{types: remoteTypes()}, nil, static.Layouts, nil)
	require.NoError(t, s.Load(context.Background()))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{0, 12, 14}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Len(t, all[0].Cells(), 2)
	assert.Equal(t, "buildings/technological/cosmodrome.png", all[2].Icon)
}

func TestLoad_都失败时返回系统错误且可重试(t *testing.T) {
	remote := &fakeSource{err: errors.New("dial tcp: refused")}
	fallback := &fakeSource{err: errors.New("broken table")}
	s := NewService(remote, fallback, nil, nil)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errx.IsSys(err))
	assert.False(t, s.Loaded())

	remote.err = nil
	remote.types = remoteTypes()
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, int32(2), remote.calls.Load())
}
