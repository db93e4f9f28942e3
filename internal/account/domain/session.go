package domain

import (
	"encoding/json"
	"time"
)

// Session 是本机保存的登录状态，没有过期时间，直到主动登出。
type Session struct {
	UserID     int64
	Name       string
	Email      string
	SignedInAt time.Time
	// User 是登录时后端返回的完整用户状态，原样保存。
	User json.RawMessage
}

// Valid 只要求有用户 id。
func (s Session) Valid() bool {
	return s.UserID > 0
}
