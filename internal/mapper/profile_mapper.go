package mapper

import (
	"time"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ProfileToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		u := p.UpdatedAt
		updatedAt = &u
	}

	return &entity.Profile{
		UserId:        p.UserId,
		Gender:        p.Gender,
		Province:      p.Province,
		ExamYear:      p.ExamYear,
		SubjectChoice: []string(p.SubjectChoice),
		Score:         p.Score,
		Rank:          p.Rank,
		Batch:         p.Batch,
		Requirement:   p.Requirement,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ProfileMapper) ProfileToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Profile{
		UserId:        p.UserId,
		Gender:        p.Gender,
		Province:      p.Province,
		ExamYear:      p.ExamYear,
		SubjectChoice: datatypes.NewJSONSlice(p.SubjectChoice),
		Score:         p.Score,
		Rank:          p.Rank,
		Batch:         p.Batch,
		Requirement:   p.Requirement,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
