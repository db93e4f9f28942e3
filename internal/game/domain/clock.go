package domain

import (
	"fmt"
	"sync"
)

// 游戏历法：每月固定 30 天，一年 12 个月。
const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	DaysPerMonth   = 30
	MonthsPerYear  = 12
)

// GameTime 是殖民地的游戏内时间，精确到分钟。
type GameTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hours"`
	Minute int `json:"minutes"`
}

// Epoch 是新殖民地的起始时间 16:58 09.03.2055。
func Epoch() GameTime {
	return GameTime{Year: 2055, Month: 3, Day: 9, Hour: 16, Minute: 58}
}

// TimeString 格式为 HH:MM。
func (t GameTime) TimeString() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// DateString 格式为 DD.MM.YYYY。
func (t GameTime) DateString() string {
	return fmt.Sprintf("%02d.%02d.%d", t.Day, t.Month, t.Year)
}

func (t GameTime) String() string {
	return t.TimeString() + " " + t.DateString()
}

// Normalize 补齐缺省字段：日、月缺省为 1，年缺省为 2055。
func (t GameTime) Normalize() GameTime {
	if t.Day <= 0 {
		t.Day = 1
	}
	if t.Month <= 0 {
		t.Month = 1
	}
	if t.Year <= 0 {
		t.Year = Epoch().Year
	}
	return t
}

// Clock 按分钟推进游戏时间，记录跨过的天数。
type Clock struct {
	mu      sync.Mutex
	now     GameTime
	elapsed int
}

func NewClock(start GameTime) *Clock {
	return &Clock{now: start.Normalize()}
}

func (c *Clock) Now() GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed 返回自创建或 Load 以来跨过的天数。
func (c *Clock) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Load 用保存的时间替换当前时间，天数计数清零。
func (c *Clock) Load(t GameTime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.Normalize()
	c.elapsed = 0
}

// Tick 推进一分钟，dayRolled 表示这一分钟跨过了 24:00。
// 换日先于换月判断：第 30 天跨过午夜同样算一天，然后才回到下月 1 日。
func (c *Clock) Tick() (now GameTime, dayRolled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &c.now
	t.Minute++
	if t.Minute >= MinutesPerHour {
		t.Minute = 0
		t.Hour++
		if t.Hour >= HoursPerDay {
			t.Hour = 0
			t.Day++
			dayRolled = true
			c.elapsed++
			if t.Day > DaysPerMonth {
				t.Day = 1
				t.Month++
				if t.Month > MonthsPerYear {
					t.Month = 1
					t.Year++
				}
			}
		}
	}
	return c.now, dayRolled
}
