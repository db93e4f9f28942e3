package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"MoonColony/internal/account/domain"
	"MoonColony/internal/api"
	"MoonColony/modules/kit/errx"
)

type fakeUserAPI struct {
	user        *api.UserInfo
	loginErr    error
	registerErr error
	logins      []api.Credentials
	registers   []api.RegisterRequest
}

func (f *fakeUserAPI) Login(ctx context.Context, cred api.Credentials) (*api.UserInfo, error) {
	f.logins = append(f.logins, cred)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUserAPI) Register(ctx context.Context, req api.RegisterRequest) (int64, error) {
	f.registers = append(f.registers, req)
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	return f.user.ID, nil
}

type fakeSessionRepo struct {
	stored    *domain.Session
	loadErr   error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func (r *fakeSessionRepo) Load(ctx context.Context) (domain.Session, error) {
	if r.loadErr != nil {
		return domain.Session{}, r.loadErr
	}
	if r.stored == nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return *r.stored, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, s domain.Session) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = &s
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.stored = nil
	return nil
}

var signedInAt = time.Date(2055, 3, 9, 16, 58, 0, 0, time.UTC)

func newService(a *fakeUserAPI, r *fakeSessionRepo) *SessionService {
	return NewSessionService(a, r, func() time.Time { return signedInAt }, nil)
}

func TestLogin_成功后落盘并成为当前会话(t *testing.T) {
	a := &fakeUserAPI{user: &api.UserInfo{ID: 42, Name: "neil", CurDay: 3}}
	r := &fakeSessionRepo{}
	s := newService(a, r)

	user, err := s.Login(context.Background(), "n@moon", "pwd")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if user.ID != 42 {
		t.Fatalf("期望返回后端用户, got=%+v", user)
	}
	if r.stored == nil || r.stored.UserID != 42 || r.stored.Email != "n@moon" || !r.stored.SignedInAt.Equal(signedInAt) {
		t.Fatalf("期望会话落盘, got=%+v", r.stored)
	}
	id, err := s.UserID()
	if err != nil || id != 42 {
		t.Fatalf("期望当前用户 42, got=%d err=%v", id, err)
	}
	u, err := s.User()
	if err != nil || u.CurDay != 3 || u.Name != "neil" {
		t.Fatalf("期望能解出保存的用户状态, got=%+v err=%v", u, err)
	}
}

func TestLogin_后端拒绝时保留后端文案(t *testing.T) {
	remote := errx.ErrRemoteRejected.WithMsg("user not found").WithCause(&api.StatusError{Status: 404, Message: "user not found"})
	a := &fakeUserAPI{loginErr: remote}
	r := &fakeSessionRepo{}
	s := newService(a, r)

	_, err := s.Login(context.Background(), "n@moon", "bad")
	if !errors.Is(err, ErrLoginRejected) {
		t.Fatalf("期望 ErrLoginRejected, got=%v", err)
	}
	if api.MessageOf(err, "") != "user not found" {
		t.Fatalf("期望后端文案, got=%q", api.MessageOf(err, ""))
	}
	if r.saves != 0 {
		t.Fatalf("期望拒绝时不写会话")
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("期望仍未登录")
	}
}

func TestLogin_后端不可用原样返回(t *testing.T) {
	a := &fakeUserAPI{loginErr: errx.ErrUnavailable.WithCause(errors.New("connection refused"))}
	s := newService(a, &fakeSessionRepo{})
	_, err := s.Login(context.Background(), "n@moon", "pwd")
	if !errors.Is(err, errx.ErrUnavailable) || errors.Is(err, ErrLoginRejected) {
		t.Fatalf("期望系统错误原样返回, got=%v", err)
	}
}

func TestLogin_落盘失败视为登录失败(t *testing.T) {
	a := &fakeUserAPI{user: &api.UserInfo{ID: 42}}
	r := &fakeSessionRepo{saveErr: domain.ErrSystemUnavailable.WithCause(errors.New("database is locked"))}
	s := newService(a, r)

	_, err := s.Login(context.Background(), "n@moon", "pwd")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("期望 ErrUnavailable, got=%v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("期望落盘失败时不替换当前会话")
	}
}

func TestRegister_成功后自动登录(t *testing.T) {
	a := &fakeUserAPI{user: &api.UserInfo{ID: 7, Name: "buzz"}}
	r := &fakeSessionRepo{}
	s := newService(a, r)

	user, err := s.Register(context.Background(), "buzz", "b@moon", "pwd")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if user.ID != 7 {
		t.Fatalf("期望登录后的用户, got=%+v", user)
	}
	if len(a.registers) != 1 || len(a.logins) != 1 {
		t.Fatalf("期望注册一次再登录一次, registers=%d logins=%d", len(a.registers), len(a.logins))
	}
	if a.logins[0] != (api.Credentials{Email: "b@moon", Password: "pwd"}) {
		t.Fatalf("期望用同一组凭据登录, got=%+v", a.logins[0])
	}
}

func TestRegister_被拒绝时不登录(t *testing.T) {
	a := &fakeUserAPI{user: &api.UserInfo{ID: 7}, registerErr: errx.ErrRemoteRejected.WithMsg("email already used")}
	s := newService(a, &fakeSessionRepo{})

	_, err := s.Register(context.Background(), "buzz", "b@moon", "pwd")
	if !errors.Is(err, ErrRegisterRejected) {
		t.Fatalf("期望 ErrRegisterRejected, got=%v", err)
	}
	if api.MessageOf(err, "") != "email already used" {
		t.Fatalf("期望后端文案, got=%q", api.MessageOf(err, ""))
	}
	if len(a.logins) != 0 {
		t.Fatalf("期望注册失败不登录")
	}
}

func TestLogout_删除会话且可重复调用(t *testing.T) {
	a := &fakeUserAPI{user: &api.UserInfo{ID: 42}}
	r := &fakeSessionRepo{}
	s := newService(a, r)
	if _, err := s.Login(context.Background(), "n@moon", "pwd"); err != nil {
		t.Fatalf("err=%v", err)
	}

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if r.stored != nil {
		t.Fatalf("期望删除落盘的会话")
	}
	if _, err := s.UserID(); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("期望登出后未登录, got=%v", err)
	}
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("期望重复登出不报错, got=%v", err)
	}
	if r.deletes != 1 {
		t.Fatalf("期望只删除一次, got=%d", r.deletes)
	}
}

func TestRestore_恢复上次会话(t *testing.T) {
	raw, _ := json.Marshal(api.UserInfo{ID: 9, Name: "sally"})
	r := &fakeSessionRepo{stored: &domain.Session{UserID: 9, Name: "sally", User: raw}}
	s := newService(&fakeUserAPI{}, r)

	sess, ok, err := s.Restore(context.Background())
	if err != nil || !ok || sess.UserID != 9 {
		t.Fatalf("期望恢复会话, got=%+v ok=%v err=%v", sess, ok, err)
	}
	if id, _ := s.UserID(); id != 9 {
		t.Fatalf("期望当前用户 9, got=%d", id)
	}
}

func TestRestore_无会话或损坏时视为未登录(t *testing.T) {
	s := newService(&fakeUserAPI{}, &fakeSessionRepo{})
	if _, ok, err := s.Restore(context.Background()); ok || err != nil {
		t.Fatalf("期望无会话时 ok=false err=nil, got ok=%v err=%v", ok, err)
	}

	r := &fakeSessionRepo{loadErr: domain.ErrSessionCorrupt}
	s = newService(&fakeUserAPI{}, r)
	if _, ok, err := s.Restore(context.Background()); ok || err != nil {
		t.Fatalf("期望损坏时 ok=false err=nil, got ok=%v err=%v", ok, err)
	}
	if r.deletes != 1 {
		t.Fatalf("期望丢弃损坏的会话")
	}

	r = &fakeSessionRepo{loadErr: domain.ErrSystemUnavailable.WithCause(errors.New("disk"))}
	s = newService(&fakeUserAPI{}, r)
	if _, _, err := s.Restore(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("期望读库失败返回 ErrUnavailable, got=%v", err)
	}
}
