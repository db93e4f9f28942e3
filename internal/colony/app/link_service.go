package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"MoonColony/internal/api"
	"MoonColony/internal/colony/domain"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// LinkService 管理分区之间的电力线与道路，并缓存最近一次的列表。
type LinkService struct {
	api    LinkAPI
	ledger *domain.ResourceLedger
	log    Logger

	mu    sync.RWMutex
	links []domain.Link
}

func NewLinkService(linkAPI LinkAPI, ledger *domain.ResourceLedger, log Logger) *LinkService {
	if log == nil {
		log = logx.Nop()
	}
	return &LinkService{api: linkAPI, ledger: ledger, log: log}
}

func validateLink(userID int64, l domain.Link) error {
	if userID <= 0 {
		return ErrNotSignedIn
	}
	if !l.Valid() {
		return errx.ErrReqParamERR.WithMsg("invalid link").
			WithData("type", int(l.Type)).WithData("zone1", l.Zone1).WithData("zone2", l.Zone2)
	}
	return nil
}

func toRequest(userID int64, l domain.Link) api.LinkRequest {
	return api.NewLinkRequest(userID, int(l.Type), l.Zone1, l.Zone2)
}

// Create 先询问后端能否建立，再建立并从账本扣除后端返回的材料量。
func (s *LinkService) Create(ctx context.Context, userID int64, l domain.Link) (int64, error) {
	if err := validateLink(userID, l); err != nil {
		return 0, err
	}
	req := toRequest(userID, l)
	check, err := s.api.CheckLink(ctx, req)
	if err != nil {
		return 0, err
	}
	if !check.Possible {
		msg := check.Message
		if msg == "" {
			msg = ReasonLinkCheckNegative.Message
		}
		logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog("colony.link", ReasonLinkCheckNegative.Code, msg),
			zap.Int64("user_id", userID))
		return 0, ErrLinkRejected.WithMsg(msg).WithReason(ReasonLinkCheckNegative)
	}
	cost, err := s.api.CreateLink(ctx, req)
	if err != nil {
		return 0, err
	}
	if s.ledger != nil && cost > 0 {
		left := s.ledger.Value(domain.ResourceConstruction) - float64(cost)
		_ = s.ledger.Set(domain.ResourceConstruction, left)
	}
	s.mu.Lock()
	s.links = append(s.links, l)
	s.mu.Unlock()
	return cost, nil
}

func (s *LinkService) Delete(ctx context.Context, userID int64, l domain.Link) error {
	if err := validateLink(userID, l); err != nil {
		return err
	}
	if err := s.api.DeleteLink(ctx, toRequest(userID, l)); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.links[:0]
	for _, cur := range s.links {
		if cur != l {
			kept = append(kept, cur)
		}
	}
	s.links = kept
	s.mu.Unlock()
	return nil
}

// List 从后端刷新列表；后端失败时返回错误，缓存保持不变。
func (s *LinkService) List(ctx context.Context, userID int64) ([]domain.Link, error) {
	if userID <= 0 {
		return s.Cached(), nil
	}
	dtos, err := s.api.Links(ctx, userID)
	if err != nil {
		return nil, err
	}
	links := FromLinkDTOs(dtos)
	s.mu.Lock()
	s.links = links
	s.mu.Unlock()
	return s.Cached(), nil
}

// Optimal 返回后端建议的连接方案。
func (s *LinkService) Optimal(ctx context.Context, userID int64) ([]domain.Link, error) {
	if userID <= 0 {
		return nil, ErrNotSignedIn
	}
	dtos, err := s.api.OptimalLinks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromLinkDTOs(dtos), nil
}

func (s *LinkService) Cached() []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Link, len(s.links))
	copy(out, s.links)
	return out
}

func FromLinkDTOs(dtos []api.LinkDTO) []domain.Link {
	out := make([]domain.Link, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Link{Type: domain.LinkType(d.Type), Zone1: d.IDZone1, Zone2: d.IDZone2})
	}
	return out
}
