package domain

import (
	"time"

	world "MoonColony/internal/world/domain"
)

// AttemptState 是一次放置尝试所处的阶段。
type AttemptState int

const (
	Selecting AttemptState = iota
	Validating
	Rejected
	Committing
	Placed
	RolledBack
)

func (s AttemptState) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Validating:
		return "validating"
	case Rejected:
		return "rejected"
	case Committing:
		return "committing"
	case Placed:
		return "placed"
	case RolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Terminal 表示尝试已结束。
func (s AttemptState) Terminal() bool {
	return s == Rejected || s == Placed || s == RolledBack
}

var transitions = map[AttemptState][]AttemptState{
	Selecting:  {Validating},
	Validating: {Rejected, Committing},
	Committing: {Rejected, Placed, RolledBack},
}

// Attempt 记录一次放置从选择到结束的过程。
type Attempt struct {
	UserID       int64
	ZoneID       int
	ModuleTypeID int
	Anchor       world.Coord
	State        AttemptState
	// Reason 是面向用户的结果说明，只在 Rejected/RolledBack 时有值。
	Reason    string
	Cost      int64
	ServerID  *int64
	StartedAt time.Time
	History   []AttemptState
}

func NewAttempt(userID int64, zoneID, moduleTypeID int, anchor world.Coord, now time.Time) *Attempt {
	return &Attempt{
		UserID:       userID,
		ZoneID:       zoneID,
		ModuleTypeID: moduleTypeID,
		Anchor:       anchor,
		State:        Selecting,
		StartedAt:    now,
		History:      []AttemptState{Selecting},
	}
}

// To 推进状态，非法跳转返回 ErrInvalidTransition 且状态不变。
func (a *Attempt) To(next AttemptState) error {
	for _, allowed := range transitions[a.State] {
		if allowed == next {
			a.State = next
			a.History = append(a.History, next)
			return nil
		}
	}
	return ErrInvalidTransition.WithData("from", a.State.String()).WithData("to", next.String())
}
