// Package static 提供内置的模块类型表，后端不可达时由目录服务回退使用。
package static

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"MoonColony/internal/catalog/domain"
	world "MoonColony/internal/world/domain"
)

//go:embed types.yaml
var typesYAML []byte

//go:embed layout.yaml
var layoutYAML []byte

type typeRow struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	People int    `yaml:"people"`
	Cost   int64  `yaml:"cost"`
	Living bool   `yaml:"living"`
}

type layoutRow struct {
	Category    string             `yaml:"category"`
	Footprint   []world.Offset     `yaml:"footprint"`
	Icon        string             `yaml:"icon"`
	Production  map[string]float64 `yaml:"production"`
	Consumption map[string]float64 `yaml:"consumption"`
	Storage     *struct {
		Kind     string `yaml:"kind"`
		Capacity int64  `yaml:"capacity"`
	} `yaml:"storage"`
}

// Source 读取内置表，实现目录服务的 TypeSource。
type Source struct{}

func New() *Source {
	return &Source{}
}

func (s *Source) ModuleTypes(_ context.Context) ([]domain.ModuleType, error) {
	return Types()
}

// Types 解析内置类型表，按 id 升序返回。
func Types() ([]domain.ModuleType, error) {
	var rows []typeRow
	if err := yaml.Unmarshal(typesYAML, &rows); err != nil {
		return nil, fmt.Errorf("parse types.yaml: %w", err)
	}
	out := make([]domain.ModuleType, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ModuleType{
			ID:             r.ID,
			Name:           r.Name,
			Title:          r.Title,
			Cost:           r.Cost,
			PeopleRequired: r.People,
			IsLivingModule: r.Living,
		})
	}
	domain.SortByID(out)
	return out, nil
}

// Layouts 解析内置 layout 表，key 为后端枚举名。
func Layouts() (map[string]domain.Layout, error) {
	var rows map[string]layoutRow
	if err := yaml.Unmarshal(layoutYAML, &rows); err != nil {
		return nil, fmt.Errorf("parse layout.yaml: %w", err)
	}
	out := make(map[string]domain.Layout, len(rows))
	for name, r := range rows {
		l := domain.Layout{
			Category:    r.Category,
			Footprint:   r.Footprint,
			Icon:        r.Icon,
			Production:  r.Production,
			Consumption: r.Consumption,
		}
		if r.Storage != nil {
			l.Storage = &domain.Storage{Kind: r.Storage.Kind, Capacity: r.Storage.Capacity}
		}
		out[name] = l
	}
	return out, nil
}
