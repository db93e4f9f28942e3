package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpoch_格式化(t *testing.T) {
	e := Epoch()
	assert.Equal(t, "16:58", e.TimeString())
	assert.Equal(t, "09.03.2055", e.DateString())
	assert.Equal(t, "16:58 09.03.2055", e.String())
}

func TestTick_分钟进位到小时(t *testing.T) {
	c := NewClock(Epoch())
	now, rolled := c.Tick()
	assert.False(t, rolled)
	assert.Equal(t, "16:59", now.TimeString())
	now, _ = c.Tick()
	assert.Equal(t, "17:00", now.TimeString())
}

func TestTick_午夜换日(t *testing.T) {
	c := NewClock(GameTime{Year: 2055, Month: 3, Day: 9, Hour: 23, Minute: 59})
	now, rolled := c.Tick()
	assert.True(t, rolled)
	assert.Equal(t, "00:00 10.03.2055", now.String())
	assert.Equal(t, 1, c.Elapsed())
}

func TestTick_每月30天且跨年(t *testing.T) {
	c := NewClock(GameTime{Year: 2055, Month: 12, Day: 30, Hour: 23, Minute: 59})
	now, rolled := c.Tick()
	assert.True(t, rolled)
	assert.Equal(t, "01.01.2056", now.DateString())

	c = NewClock(GameTime{Year: 2055, Month: 4, Day: 29, Hour: 23, Minute: 59})
	now, _ = c.Tick()
	assert.Equal(t, "30.04.2055", now.DateString())
}

func TestTick_一整天正好换日一次(t *testing.T) {
	c := NewClock(Epoch())
	days := 0
	for i := 0; i < MinutesPerHour*HoursPerDay; i++ {
		if _, rolled := c.Tick(); rolled {
			days++
		}
	}
	assert.Equal(t, 1, days)
	assert.Equal(t, "16:58 10.03.2055", c.Now().String())
}

func TestLoad_缺省字段(t *testing.T) {
	c := NewClock(Epoch())
	c.Tick()
	c.Load(GameTime{Hour: 5})
	assert.Equal(t, "05:00 01.01.2055", c.Now().String())
	assert.Equal(t, 0, c.Elapsed())
}
