package implementation

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/mapper"
	"ai-advisor-be/internal/model"
	"ai-advisor-be/internal/repository/contract"
	"ai-advisor-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CollegeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CollegeMapper
}

func NewCollegeRepository(db *gorm.DB) contract.CollegeRepository {
	return &CollegeRepositoryImpl{
		db:     db,
		mapper: mapper.NewCollegeMapper(),
	}
}

func (r *CollegeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CollegeRepositoryImpl) Create(ctx context.Context, college *entity.College) error {
	m := r.mapper.CollegeToModel(college)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*college = *r.mapper.CollegeToEntity(m)
	return nil
}

func (r *CollegeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.College, error) {
	var models []*model.College
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.College, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CollegeToEntity(m)
	}
	return entities, nil
}

func (r *CollegeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.College{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
