// Package remote 从后端 /module-types 读取模块类型。
package remote

import (
	"context"

	"MoonColony/internal/api"
	"MoonColony/internal/catalog/domain"
)

// TypesAPI 是 api.Client 中目录用到的部分。
type TypesAPI interface {
	ModuleTypes(ctx context.Context) ([]api.ModuleTypeDTO, error)
}

type Source struct {
	api TypesAPI
}

func New(a TypesAPI) *Source {
	return &Source{api: a}
}

func (s *Source) ModuleTypes(ctx context.Context) ([]domain.ModuleType, error) {
	dtos, err := s.api.ModuleTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ModuleType, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.ModuleType{
			ID:             d.ID,
			Name:           d.Name,
			Title:          d.Name,
			Cost:           d.Cost,
			PeopleRequired: d.PeopleRequired,
			IsLivingModule: d.IsLivingModule,
		})
	}
	return out, nil
}
