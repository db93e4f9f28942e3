package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"MoonColony/internal/catalog/domain"
	"MoonColony/modules/kit/logx"
)

// Service 持有模块类型目录。Load 之前 Get 返回 ErrCatalogNotLoaded。
type Service struct {
	remote   TypeSource
	fallback TypeSource
	layouts  LayoutSource
	log      Logger

	mu     sync.Mutex
	loaded bool
	byID   map[int]domain.ModuleType
	sorted []domain.ModuleType
}

func NewService(remote, fallback TypeSource, layouts LayoutSource, log Logger) *Service {
	if log == nil {
		log = logx.Nop()
	}
	return &Service{remote: remote, fallback: fallback, layouts: layouts, log: log}
}

// Load 拉取并缓存目录，每个 Service 只真正执行一次；并发调用会等同一次加载完成。
// 后端失败时改用内置表并记一条日志，两者都失败才返回错误。
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	types, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	var layouts map[string]domain.Layout
	if s.layouts != nil {
		layouts, err = s.layouts()
		if err != nil {
			logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("catalog.load",
				ErrUnavailable.WithReason(ReasonLayoutUnavailable).WithCause(err)))
		}
	}

	byID := make(map[int]domain.ModuleType, len(types))
	for _, t := range types {
		if l, ok := layouts[t.Name]; ok {
			t = l.Apply(t)
		}
		byID[t.ID] = t
	}
	sorted := make([]domain.ModuleType, 0, len(byID))
	for _, t := range byID {
		sorted = append(sorted, t)
	}
	domain.SortByID(sorted)

	s.byID = byID
	s.sorted = sorted
	s.loaded = true
	s.log.Info("module catalog loaded", zap.Int("types", len(sorted)))
	return nil
}

func (s *Service) fetch(ctx context.Context) ([]domain.ModuleType, error) {
	var remoteErr error
	if s.remote != nil {
		types, err := s.remote.ModuleTypes(ctx)
		if err == nil && len(types) > 0 {
			return types, nil
		}
		remoteErr = err
		if s.fallback != nil {
			s.log.Warn("module catalog falls back to built-in table",
				zap.String("reason", ReasonRemoteTypesFail.Code), zap.Error(err))
		}
	}
	if s.fallback == nil {
		return nil, ErrUnavailable.WithReason(ReasonRemoteTypesFail).WithCause(remoteErr)
	}
	types, err := s.fallback.ModuleTypes(ctx)
	if err != nil {
		return nil, ErrUnavailable.WithReason(ReasonStaticTypesFail).WithCause(err)
	}
	return types, nil
}

// Loaded 表示目录是否已就绪。
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Service) Get(id int) (domain.ModuleType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.ModuleType{}, ErrCatalogNotLoaded
	}
	t, ok := s.byID[id]
	if !ok {
		return domain.ModuleType{}, ErrUnknownModuleType.WithData("module_type", id)
	}
	return t, nil
}

// All 返回按 id 排序的目录副本。
func (s *Service) All() ([]domain.ModuleType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrCatalogNotLoaded
	}
	out := make([]domain.ModuleType, len(s.sorted))
	copy(out, s.sorted)
	return out, nil
}

// Cost 返回建造该类型所需的资源。
func (s *Service) Cost(id int) (map[string]int64, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return t.BuildCost(), nil
}
