package domain

import (
	"sync"
)

// 资源 id，顺序与后端资源数组一致。
const (
	ResourceWater        = "water"
	ResourceFuel         = "fuel"
	ResourceFood         = "food"
	ResourceEnergy       = "energy"
	ResourceOxygen       = "oxygen"
	ResourceCO2          = "co2"
	ResourceWaste        = "waste"
	ResourceConstruction = "construction"
)

// Resource 是账本里的一项，Value 恒 >= 0。
type Resource struct {
	ID    string
	Value float64
	Unit  string
	Name  string
}

type resourceDef struct {
	id, unit, name string
	initial        float64
}

var resourceDefs = []resourceDef{
	{ResourceWater, "kg", "Water", 100},
	{ResourceFuel, "kg", "Fuel", 100},
	{ResourceFood, "kg", "Food", 100},
	{ResourceEnergy, "kWh", "Energy", 100},
	{ResourceOxygen, "kg", "Oxygen", 100},
	{ResourceCO2, "kg", "Carbon dioxide", 100},
	{ResourceWaste, "kg", "Waste", 0},
	{ResourceConstruction, "kg", "Construction materials", 100000},
}

// ResourceIDs 返回按后端顺序排列的资源 id。
func ResourceIDs() []string {
	out := make([]string, len(resourceDefs))
	for i, d := range resourceDefs {
		out[i] = d.id
	}
	return out
}

// ResourceLedger 是玩家的资源账本，并发安全。
type ResourceLedger struct {
	mu    sync.RWMutex
	items []Resource
	index map[string]int
}

// NewResourceLedger 按默认初值创建账本。
func NewResourceLedger() *ResourceLedger {
	l := &ResourceLedger{index: make(map[string]int, len(resourceDefs))}
	for i, d := range resourceDefs {
		l.items = append(l.items, Resource{ID: d.id, Value: d.initial, Unit: d.unit, Name: d.name})
		l.index[d.id] = i
	}
	return l
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Snapshot 返回账本副本，顺序固定。
func (l *ResourceLedger) Snapshot() []Resource {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Resource, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ResourceLedger) Get(id string) (Resource, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return Resource{}, false
	}
	return l.items[i], true
}

// Value 返回余额，未知 id 为 0。
func (l *ResourceLedger) Value(id string) float64 {
	r, _ := l.Get(id)
	return r.Value
}

// Set 写入余额，负数截到 0。
func (l *ResourceLedger) Set(id string, v float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return ErrUnknownResource.WithData("resource", id)
	}
	l.items[i].Value = clamp(v)
	return nil
}

// SetAt 按后端下标写入余额，越界下标忽略。
func (l *ResourceLedger) SetAt(index int, v float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return
	}
	l.items[index].Value = clamp(v)
}

// Reserve 扣减 amount；余额不足时返回 ErrInsufficientResource 且不做任何修改。
func (l *ResourceLedger) Reserve(id string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return ErrUnknownResource.WithData("resource", id)
	}
	have := l.items[i].Value
	if have < amount {
		return ErrInsufficientResource.
			WithData("resource", id).
			WithData("have", have).
			WithData("need", amount)
	}
	l.items[i].Value = clamp(have - amount)
	return nil
}

// Refund 退回之前 Reserve 的数量。
func (l *ResourceLedger) Refund(id string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return ErrUnknownResource.WithData("resource", id)
	}
	l.items[i].Value = clamp(l.items[i].Value + amount)
	return nil
}

// ApplyDeltas 按下标累加增量，多出的项忽略。
func (l *ResourceLedger) ApplyDeltas(deltas []int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, d := range deltas {
		if i >= len(l.items) {
			break
		}
		l.items[i].Value = clamp(l.items[i].Value + float64(d))
	}
}

// Reset 全部清零。
func (l *ResourceLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		l.items[i].Value = 0
	}
}
