package domain

import (
	"sort"

	world "MoonColony/internal/world/domain"
)

// CosmodromeID 是航天港的类型 id，放置前需要额外的地形校验。
const CosmodromeID = 14

// ResourceConstruction 是建造消耗的资源 id。
const ResourceConstruction = "construction"

// ResourceFlow 是模块每天的产出与消耗，按资源 id 记。
type ResourceFlow struct {
	Production  map[string]float64
	Consumption map[string]float64
}

// Storage 是仓库类模块的容量。
type Storage struct {
	Kind     string
	Capacity int64
}

// ModuleType 是一种可建造模块。Footprint 为空时按 1x1 处理。
type ModuleType struct {
	ID             int
	Name           string
	Title          string
	Cost           int64
	PeopleRequired int
	IsLivingModule bool
	Category       string
	Footprint      []world.Offset
	Icon           string
	Flow           ResourceFlow
	Storage        *Storage
}

// Cells 返回占地偏移，至少包含锚点本身。
func (m ModuleType) Cells() []world.Offset {
	if len(m.Footprint) == 0 {
		return []world.Offset{{}}
	}
	out := make([]world.Offset, len(m.Footprint))
	copy(out, m.Footprint)
	return out
}

// BuildCost 返回建造所需资源。
func (m ModuleType) BuildCost() map[string]int64 {
	return map[string]int64{ResourceConstruction: m.Cost}
}

// Layout 是按枚举名附加到模块类型上的客户端数据。
type Layout struct {
	Category    string
	Footprint   []world.Offset
	Icon        string
	Production  map[string]float64
	Consumption map[string]float64
	Storage     *Storage
}

// Apply 把 layout 合并进模块类型，返回新值。
func (l Layout) Apply(m ModuleType) ModuleType {
	m.Category = l.Category
	m.Icon = l.Icon
	if len(l.Footprint) > 0 {
		m.Footprint = append([]world.Offset(nil), l.Footprint...)
	}
	m.Flow = ResourceFlow{Production: copyFlow(l.Production), Consumption: copyFlow(l.Consumption)}
	if l.Storage != nil {
		s := *l.Storage
		m.Storage = &s
	}
	return m
}

func copyFlow(in map[string]float64) map[string]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// SortByID 按 id 升序排列（原地）。
func SortByID(types []ModuleType) {
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
}
