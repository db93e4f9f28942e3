package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"MoonColony/internal/api"
	colonydomain "MoonColony/internal/colony/domain"
	"MoonColony/internal/game/domain"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// DayService 驱动游戏时钟：跨过午夜时向后端推进一天，把资源增量记进账本并发出 DayAdvanced。
type DayService struct {
	api    DayAPI
	clock  *domain.Clock
	ledger Ledger
	events *colonydomain.Events
	log    Logger

	mu       sync.Mutex
	day      int
	finished bool
}

func NewDayService(dayAPI DayAPI, clock *domain.Clock, ledger Ledger, events *colonydomain.Events, log Logger) *DayService {
	if clock == nil {
		clock = domain.NewClock(domain.Epoch())
	}
	if log == nil {
		log = logx.Nop()
	}
	return &DayService{api: dayAPI, clock: clock, ledger: ledger, events: events, log: log}
}

// SetDay 用后端的当前天数对齐本地计数，通常在登录后调用。
func (s *DayService) SetDay(day int) {
	s.mu.Lock()
	s.day = day
	s.mu.Unlock()
}

func (s *DayService) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

func (s *DayService) Clock() *domain.Clock {
	return s.clock
}

// Advance 推进一天。后端返回 204 时没有增量，change 为 nil。
func (s *DayService) Advance(ctx context.Context, userID int64) (*api.DayChange, error) {
	if userID <= 0 {
		return nil, ErrNotSignedIn
	}
	s.mu.Lock()
	finished := s.finished
	s.mu.Unlock()
	if finished {
		return nil, ErrColonyFinished.WithReason(ReasonColonyFinished).WithData("user_id", userID)
	}

	change, err := s.api.AddDay(ctx, userID)
	if err != nil {
		logx.ReportErrorWithLoggerContext(ctx, s.log, "game.day", err, errx.IsSys(err),
			zap.Int64("user_id", userID), zap.String("reason", ReasonDayAdvanceFail.Code))
		return nil, err
	}

	s.mu.Lock()
	s.day++
	day := s.day
	s.mu.Unlock()

	if change != nil {
		if s.ledger != nil {
			s.ledger.ApplyDeltas(change.Resources)
		}
		if !change.Live {
			logx.ReportBizWithLoggerContext(ctx, s.log,
				logx.NewBizLog("game.day", ReasonColonyDied.Code, ReasonColonyDied.Message),
				zap.Int64("user_id", userID), zap.Int("day", day))
		}
	}
	s.events.Publish(colonydomain.Event{Kind: colonydomain.DayAdvanced, UserID: userID, Day: day, At: time.Now()})
	s.log.WithContext(ctx).Debug("day advanced", zap.Int64("user_id", userID), zap.Int("day", day))
	return change, nil
}

// Tick 推进一分钟；跨过午夜且已登录时顺带推进一天。换日失败不会回拨时钟。
func (s *DayService) Tick(ctx context.Context, userID int64) (domain.GameTime, error) {
	now, rolled := s.clock.Tick()
	if !rolled || userID <= 0 {
		return now, nil
	}
	_, err := s.Advance(ctx, userID)
	return now, err
}

// Run 每隔 every 调用一次 Tick，直到 ctx 结束。换日错误只记日志，不中断循环。
func (s *DayService) Run(ctx context.Context, userID int64, every time.Duration) error {
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_, _ = s.Tick(ctx, userID)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Status 查询殖民进度，并记住是否已经结束。
func (s *DayService) Status(ctx context.Context, userID int64) (*api.ColonizationStatus, error) {
	if userID <= 0 {
		return nil, ErrNotSignedIn
	}
	st, err := s.api.ColonizationStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.finished = st.Finished
	if st.CurDay > 0 {
		s.day = st.CurDay
	}
	s.mu.Unlock()
	return st, nil
}

// Finish 结束殖民，之后不再推进日期。
func (s *DayService) Finish(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrNotSignedIn
	}
	if err := s.api.FinishColonization(ctx, userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
	s.log.WithContext(ctx).Info("colonization finished", zap.Int64("user_id", userID))
	return nil
}
