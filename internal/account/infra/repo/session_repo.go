package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"MoonColony/internal/account/domain"
)

// sessionSlot 是唯一一行会话的主键，本机同一时间只有一个登录用户。
const sessionSlot = 1

type SessionRecord struct {
	ID         uint      `gorm:"column:id;primaryKey;comment:固定为1"`
	UserID     int64     `gorm:"column:user_id;not null;comment:后端用户ID"`
	Name       string    `gorm:"column:name;type:varchar(100);comment:用户名"`
	Email      string    `gorm:"column:email;type:varchar(255);comment:登录邮箱"`
	UserJSON   string    `gorm:"column:user_json;type:text;comment:登录时的完整用户状态"`
	SignedInAt time.Time `gorm:"column:signed_in_at;comment:登录时间"`
	Mtime      time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间"`
}

func (SessionRecord) TableName() string {
	return "user_session"
}

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{
		db: db,
	}
}

// Migrate 建表，启动时调用一次。
func (r *SessionRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SessionRecord{}); err != nil {
		return domain.ErrSystemUnavailable.WithData("table", SessionRecord{}.TableName()).WithCause(err)
	}
	return nil
}

func (r *SessionRepo) Load(ctx context.Context) (domain.Session, error) {
	var rec SessionRecord
	err := r.db.WithContext(ctx).Where("id = ?", sessionSlot).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, domain.ErrSystemUnavailable.WithCause(err)
	}
	if rec.UserJSON != "" && !json.Valid([]byte(rec.UserJSON)) {
		return domain.Session{}, domain.ErrSessionCorrupt.WithData("user_id", rec.UserID)
	}
	return domain.Session{
		UserID:     rec.UserID,
		Name:       rec.Name,
		Email:      rec.Email,
		SignedInAt: rec.SignedInAt,
		User:       json.RawMessage(rec.UserJSON),
	}, nil
}

// Save 按固定主键 upsert，新登录覆盖旧会话。
func (r *SessionRepo) Save(ctx context.Context, s domain.Session) error {
	rec := SessionRecord{
		ID:         sessionSlot,
		UserID:     s.UserID,
		Name:       s.Name,
		Email:      s.Email,
		UserJSON:   string(s.User),
		SignedInAt: s.SignedInAt,
	}
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("user_id", s.UserID).WithCause(err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Delete(&SessionRecord{}, sessionSlot).Error; err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}
