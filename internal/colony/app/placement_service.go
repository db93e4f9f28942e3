package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"MoonColony/internal/api"
	catalog "MoonColony/internal/catalog/domain"
	"MoonColony/internal/colony/domain"
	world "MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// 航天港的地形要求。
const (
	MaxCosmodromeSlope    = 2.5
	MinCosmodromeFlatArea = 100.0
)

type PlaceRequest struct {
	UserID       int64
	ZoneID       int
	ModuleTypeID int
	Anchor       world.Coord
}

// PlacementService 负责建筑的放置与拆除，协调本地网格、账本、登记表和后端确认。
type PlacementService struct {
	grid     *world.Grid
	ledger   *domain.ResourceLedger
	registry *domain.Registry
	catalog  Catalog
	api      ModuleAPI
	events   *domain.Events
	log      Logger
	now      func() time.Time

	mu       sync.Mutex
	inflight map[int64]*semaphore.Weighted
}

func NewPlacementService(grid *world.Grid, ledger *domain.ResourceLedger, registry *domain.Registry,
	catalog Catalog, moduleAPI ModuleAPI, events *domain.Events, log Logger) *PlacementService {
	if log == nil {
		log = logx.Nop()
	}
	return &PlacementService{
		grid:     grid,
		ledger:   ledger,
		registry: registry,
		catalog:  catalog,
		api:      moduleAPI,
		events:   events,
		log:      log,
		now:      time.Now,
		inflight: make(map[int64]*semaphore.Weighted),
	}
}

// guard 返回用户的单飞锁，同一用户同一时间只允许一个放置/拆除/同步在进行。
func (s *PlacementService) guard(userID int64) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.inflight[userID]
	if !ok {
		g = semaphore.NewWeighted(1)
		s.inflight[userID] = g
	}
	return g
}

// Place 执行一次放置尝试。返回的 Attempt 总是处于终态（拿不到锁时为 nil）；
// Rejected 与 RolledBack 同时返回对应错误，Attempt.Reason 是给玩家看的文案。
func (s *PlacementService) Place(ctx context.Context, req PlaceRequest) (*domain.Attempt, error) {
	g := s.guard(req.UserID)
	if !g.TryAcquire(1) {
		return nil, ErrPlacementInFlight.WithData("user_id", req.UserID)
	}
	defer g.Release(1)

	a := domain.NewAttempt(req.UserID, req.ZoneID, req.ModuleTypeID, req.Anchor, s.now())
	if err := a.To(domain.Validating); err != nil {
		return a, err
	}

	mt, err := s.catalog.Get(req.ModuleTypeID)
	if err != nil {
		return s.reject(ctx, a, ReasonUnknownModuleType, err)
	}
	a.Cost = mt.Cost
	footprint := mt.Cells()
	if err := s.grid.CheckFootprint(req.Anchor, footprint); err != nil {
		reason := ReasonCellOccupied
		if errx.CodeOf(err) == world.CodeOutOfBounds {
			reason = ReasonOutOfBounds
		}
		return s.reject(ctx, a, reason, err)
	}
	if have := s.ledger.Value(domain.ResourceConstruction); have < float64(mt.Cost) {
		return s.reject(ctx, a, ReasonInsufficientMaterials, insufficient(have, mt.Cost))
	}

	if err := a.To(domain.Committing); err != nil {
		return a, err
	}
	zone := req.ZoneID
	if zone <= 0 {
		zone = api.DefaultZone
	}
	if mt.ID == catalog.CosmodromeID {
		if err := s.checkCosmodrome(ctx, zone, req.Anchor); err != nil {
			return s.reject(ctx, a, ReasonTerrainUnsuitable, err)
		}
	}

	place := api.NewModulePlace(req.UserID, mt.ID, req.Anchor, zone)
	check, err := s.api.CheckPlacement(ctx, place, &zone)
	if err != nil {
		return s.rollback(ctx, a, ReasonCheckUnavailable, err)
	}
	if !check.Possible {
		msg := check.Message
		if msg == "" {
			msg = ReasonCheckNegative.Message
		}
		return s.reject(ctx, a, ReasonCheckNegative, ErrPlacementRejected.WithMsg(msg).WithReason(ReasonCheckNegative))
	}

	cost := float64(mt.Cost)
	if err := s.ledger.Reserve(domain.ResourceConstruction, cost); err != nil {
		return s.reject(ctx, a, ReasonInsufficientMaterials, insufficient(s.ledger.Value(domain.ResourceConstruction), mt.Cost))
	}
	serverID, err := s.api.CreateModule(ctx, place)
	if err != nil {
		_ = s.ledger.Refund(domain.ResourceConstruction, cost)
		return s.rollback(ctx, a, ReasonCreateUnavailable, err)
	}
	if serverID == 0 {
		_ = s.ledger.Refund(domain.ResourceConstruction, cost)
		return s.rollback(ctx, a, ReasonCreateNotConfirmed, ErrCreateNotConfirmed.WithReason(ReasonCreateNotConfirmed))
	}

	b := domain.Building{
		Anchor:       req.Anchor,
		ModuleTypeID: mt.ID,
		Footprint:    footprint,
		ServerID:     &serverID,
		PlacedAt:     s.now(),
		Meta:         domain.BuildingMeta{ZoneID: zone},
	}
	if err := s.commitLocal(b); err != nil {
		_ = s.ledger.Refund(domain.ResourceConstruction, cost)
		if delErr := s.api.DeleteModule(ctx, req.UserID, serverID); delErr != nil {
			s.log.WithContext(ctx).Warn("orphan module left on server",
				zap.Int64("user_id", req.UserID), zap.Int64("module_id", serverID), zap.Error(delErr))
		}
		return s.rollback(ctx, a, ReasonLocalCommitFail, errx.ErrInternal.WithReason(ReasonLocalCommitFail).WithCause(err))
	}

	a.ServerID = &serverID
	if err := a.To(domain.Placed); err != nil {
		return a, err
	}
	s.log.WithContext(ctx).Info("module placed",
		zap.Int64("user_id", req.UserID),
		zap.Int("module_type", mt.ID),
		zap.String("anchor", req.Anchor.String()),
		zap.Int64("module_id", serverID))
	s.events.Publish(domain.Event{Kind: domain.BuildingPlaced, UserID: req.UserID, Building: &b, At: b.PlacedAt})
	return a, nil
}

func insufficient(have float64, need int64) error {
	return domain.ErrInsufficientResource.
		WithMsgf("insufficient materials, have %d, need %d", int64(have), need).
		WithReason(ReasonInsufficientMaterials)
}

// checkCosmodrome 查询锚点格子的坡度与平地面积。查询失败也按地形不满足处理。
func (s *PlacementService) checkCosmodrome(ctx context.Context, zone int, at world.Coord) error {
	t, err := s.api.CellTerrain(ctx, zone, at)
	if err != nil {
		return ErrPlacementRejected.WithMsg(ReasonTerrainUnsuitable.Message).
			WithReason(ReasonTerrainUnsuitable).WithCause(err)
	}
	if t.Slope > MaxCosmodromeSlope || t.FlatArea < MinCosmodromeFlatArea {
		return ErrPlacementRejected.
			WithMsgf("%s: slope %.1f (max %.1f), flat area %.0f (min %.0f)",
				ReasonTerrainUnsuitable.Message, t.Slope, MaxCosmodromeSlope, t.FlatArea, MinCosmodromeFlatArea).
			WithReason(ReasonTerrainUnsuitable)
	}
	return nil
}

func (s *PlacementService) commitLocal(b domain.Building) error {
	if err := s.grid.Occupy(b.Anchor, b.Footprint); err != nil {
		return err
	}
	if err := s.registry.Add(b); err != nil {
		s.grid.Release(b.Anchor, b.Footprint)
		return err
	}
	return nil
}

func (s *PlacementService) reject(ctx context.Context, a *domain.Attempt, reason Reason, err error) (*domain.Attempt, error) {
	if toErr := a.To(domain.Rejected); toErr != nil {
		return a, toErr
	}
	a.Reason = api.MessageOf(err, reason.Message)
	logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog("colony.place", reason.Code, a.Reason),
		zap.Int64("user_id", a.UserID), zap.Int("module_type", a.ModuleTypeID), zap.String("anchor", a.Anchor.String()))
	return a, err
}

func (s *PlacementService) rollback(ctx context.Context, a *domain.Attempt, reason Reason, err error) (*domain.Attempt, error) {
	if toErr := a.To(domain.RolledBack); toErr != nil {
		return a, toErr
	}
	a.Reason = api.MessageOf(err, reason.Message)
	if errx.IsSys(err) {
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("colony.place", err),
			zap.String("reason", reason.Code), zap.Int64("user_id", a.UserID))
	} else {
		logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog("colony.place", reason.Code, a.Reason),
			zap.Int64("user_id", a.UserID))
	}
	return a, err
}

// Remove 拆除覆盖 at 的建筑。有 ServerID 时先删后端，后端失败则本地不动。
func (s *PlacementService) Remove(ctx context.Context, userID int64, at world.Coord) (domain.Building, error) {
	g := s.guard(userID)
	if !g.TryAcquire(1) {
		return domain.Building{}, ErrPlacementInFlight.WithData("user_id", userID)
	}
	defer g.Release(1)

	b, ok := s.registry.At(at)
	if !ok {
		return domain.Building{}, ErrBuildingNotFound.WithData("coord", at.String())
	}
	if b.ServerID != nil {
		if err := s.api.DeleteModule(ctx, userID, *b.ServerID); err != nil {
			logx.ReportErrorWithLoggerContext(ctx, s.log, "colony.remove", err, errx.IsSys(err),
				zap.Int64("user_id", userID), zap.Int64("module_id", *b.ServerID))
			return domain.Building{}, err
		}
	}
	s.registry.Remove(b.Anchor)
	s.grid.Release(b.Anchor, b.Footprint)
	s.log.WithContext(ctx).Info("module removed",
		zap.Int64("user_id", userID), zap.String("anchor", b.Anchor.String()))
	s.events.Publish(domain.Event{Kind: domain.BuildingRemoved, UserID: userID, Building: &b, At: s.now()})
	return b, nil
}

// SyncFromServer 用后端模块列表重建登记表和网格占用，返回登记的建筑数。
// 与本地已有建筑重叠的模块跳过并记日志。
func (s *PlacementService) SyncFromServer(ctx context.Context, userID int64) (int, error) {
	g := s.guard(userID)
	if !g.TryAcquire(1) {
		return 0, ErrPlacementInFlight.WithData("user_id", userID)
	}
	defer g.Release(1)

	mods, err := s.api.Modules(ctx, userID)
	if err != nil {
		logx.ReportErrorWithLoggerContext(ctx, s.log, "colony.sync", err, errx.IsSys(err),
			zap.String("reason", ReasonSyncUnavailable.Code), zap.Int64("user_id", userID))
		return 0, err
	}

	for _, old := range s.registry.Clear() {
		s.grid.Release(old.Anchor, old.Footprint)
	}
	n := 0
	for _, m := range mods {
		footprint := []world.Offset{{}}
		if mt, err := s.catalog.Get(m.ModuleType); err == nil {
			footprint = mt.Cells()
		}
		id := m.ID
		b := domain.Building{
			Anchor:       api.FromWire(m.Wire()),
			ModuleTypeID: m.ModuleType,
			Footprint:    footprint,
			ServerID:     &id,
			PlacedAt:     s.now(),
			Meta:         domain.BuildingMeta{ZoneID: m.IDZone},
		}
		if err := s.commitLocal(b); err != nil {
			s.log.WithContext(ctx).Warn("skip module from server",
				zap.Int64("module_id", m.ID), zap.String("anchor", b.Anchor.String()), zap.Error(err))
			continue
		}
		n++
	}
	return n, nil
}

// Buildings 返回当前登记的建筑。
func (s *PlacementService) Buildings() []domain.Building {
	return s.registry.All()
}

// BuildingAt 按任一覆盖格子查建筑。
func (s *PlacementService) BuildingAt(at world.Coord) (domain.Building, bool) {
	return s.registry.At(at)
}
