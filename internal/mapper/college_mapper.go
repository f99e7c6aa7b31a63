package mapper

import (
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type CollegeMapper struct{}

func NewCollegeMapper() *CollegeMapper {
	return &CollegeMapper{}
}

func (m *CollegeMapper) CollegeToEntity(c *model.College) *entity.College {
	if c == nil {
		return nil
	}
	return &entity.College{
		Id:           c.Id,
		CnName:       c.CnName,
		ProvinceName: c.ProvinceName,
		Category:     c.Category,
		Features:     []string(c.Features),
		NatureType:   c.NatureType,
		Ranking:      c.Ranking,
	}
}

func (m *CollegeMapper) CollegeToModel(c *entity.College) *model.College {
	if c == nil {
		return nil
	}
	return &model.College{
		Id:           c.Id,
		CnName:       c.CnName,
		ProvinceName: c.ProvinceName,
		Category:     c.Category,
		Features:     datatypes.NewJSONSlice(c.Features),
		NatureType:   c.NatureType,
		Ranking:      c.Ranking,
	}
}
