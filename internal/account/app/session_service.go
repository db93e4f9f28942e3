package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"MoonColony/internal/account/domain"
	"MoonColony/internal/api"
	"MoonColony/modules/kit/errx"
	"MoonColony/modules/kit/logx"
)

// SessionService 负责登录、注册、登出，并在启动时恢复上次的会话。
type SessionService struct {
	api  UserAPI
	repo SessionRepo
	now  Clock
	log  Logger

	mu      sync.RWMutex
	current *domain.Session
}

func NewSessionService(userAPI UserAPI, repo SessionRepo, now Clock, log Logger) *SessionService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logx.Nop()
	}
	return &SessionService{api: userAPI, repo: repo, now: now, log: log}
}

// Login 登录成功后先落盘，再替换内存里的会话；落盘失败视为登录失败。
func (s *SessionService) Login(ctx context.Context, email, password string) (*api.UserInfo, error) {
	user, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, s.remoteFail(ctx, "account.login", err, ErrLoginRejected, ReasonLoginRejected, zap.String("email", email))
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, ErrInternalServer.WithData("user_id", user.ID).WithCause(err)
	}
	sess := domain.Session{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      email,
		SignedInAt: s.now(),
		User:       raw,
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		werr := ErrUnavailable.WithReason(ReasonSessionWriteFail).WithData("user_id", user.ID).WithCause(err)
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("account.login", werr))
		return nil, werr
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	s.log.WithContext(ctx).Info("signed in", zap.Int64("user_id", user.ID), zap.String("name", user.Name))
	return user, nil
}

// Register 创建账号后用同一组凭据自动登录。
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*api.UserInfo, error) {
	id, err := s.api.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, s.remoteFail(ctx, "account.register", err, ErrRegisterRejected, ReasonRegisterRejected, zap.String("email", email))
	}
	s.log.WithContext(ctx).Info("registered", zap.Int64("user_id", id), zap.String("name", name))
	return s.Login(ctx, email, password)
}

// Logout 删除本机会话。没有登录时什么都不做。
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	if err := s.repo.Delete(ctx); err != nil {
		werr := ErrUnavailable.WithReason(ReasonSessionDeleteFail).WithCause(err)
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("account.logout", werr))
		return werr
	}
	s.log.WithContext(ctx).Info("signed out", zap.Int64("user_id", s.current.UserID))
	s.current = nil
	return nil
}

// Restore 读取上次保存的会话。没有会话时 ok=false 且不报错；记录损坏时丢弃并视为未登录。
func (s *SessionService) Restore(ctx context.Context) (domain.Session, bool, error) {
	sess, err := s.repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionNotFound):
		return domain.Session{}, false, nil
	case errors.Is(err, domain.ErrSessionCorrupt):
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("account.restore", err))
		_ = s.repo.Delete(ctx)
		return domain.Session{}, false, nil
	default:
		werr := ErrUnavailable.WithReason(ReasonSessionReadFail).WithCause(err)
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("account.restore", werr))
		return domain.Session{}, false, werr
	}
	if !sess.Valid() {
		return domain.Session{}, false, nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return sess, true, nil
}

// Current 返回内存里的会话副本。
func (s *SessionService) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// UserID 返回当前用户 id，未登录时返回 ErrNotSignedIn。
func (s *SessionService) UserID() (int64, error) {
	sess, ok := s.Current()
	if !ok {
		return 0, ErrNotSignedIn
	}
	return sess.UserID, nil
}

// User 解出登录时保存的用户状态。
func (s *SessionService) User() (api.UserInfo, error) {
	sess, ok := s.Current()
	if !ok {
		return api.UserInfo{}, ErrNotSignedIn
	}
	var u api.UserInfo
	if err := json.Unmarshal(sess.User, &u); err != nil {
		return api.UserInfo{}, domain.ErrSessionCorrupt.WithData("user_id", sess.UserID).WithCause(err)
	}
	return u, nil
}

// remoteFail 把后端的拒绝换成本上下文的业务错误并保留后端文案，其他错误原样返回。
func (s *SessionService) remoteFail(ctx context.Context, action string, err error, rejected *Error, reason Reason, fields ...zap.Field) error {
	if errx.IsSys(err) {
		logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog(action, err), fields...)
		return err
	}
	msg := api.MessageOf(err, reason.Message)
	logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog(action, reason.Code, msg), fields...)
	return rejected.WithMsg(msg).WithReason(reason).WithCause(err)
}
