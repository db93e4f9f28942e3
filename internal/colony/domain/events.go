package domain

import (
	"sync"
	"time"
)

type EventKind string

const (
	BuildingPlaced  EventKind = "building_placed"
	BuildingRemoved EventKind = "building_removed"
	DayAdvanced     EventKind = "day_advanced"
)

// Event 是殖民地内部的状态变化通知。Building 只在建筑事件里有值，Day 只在换日事件里有值。
type Event struct {
	Kind     EventKind
	UserID   int64
	Building *Building
	Day      int
	At       time.Time
}

// Events 是同步的观察者列表，Publish 在调用方 goroutine 里依次回调。
type Events struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
	order  []int
}

func NewEvents() *Events {
	return &Events{subs: make(map[int]func(Event))}
}

// Subscribe 注册回调，返回取消函数。
func (e *Events) Subscribe(fn func(Event)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.order = append(e.order, id)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

func (e *Events) Publish(ev Event) {
	if e == nil {
		return
	}
	e.mu.RLock()
	fns := make([]func(Event), 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.subs[id])
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
