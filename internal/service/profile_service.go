package service

import (
	"context"
	"fmt"
	"time"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/memory"
	"ai-advisor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProfileService interface {
	Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ProfileCache
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.ProfileCache,
) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (c *profileService) Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	profile := entity.Profile{
		UserId:        userId,
		Gender:        req.Gender,
		Province:      req.Province,
		ExamYear:      req.ExamYear,
		SubjectChoice: req.SubjectChoice,
		Score:         req.Score,
		Rank:          req.Rank,
		Batch:         req.Batch,
		Requirement:   req.Requirement,
	}

	if existing == nil {
		profile.CreatedAt = time.Now()
		if err := uow.ProfileRepository().Create(ctx, &profile); err != nil {
			return nil, err
		}
	} else {
		profile.CreatedAt = existing.CreatedAt
		// An upsert without a requirement keeps the accumulated narrative.
		if profile.Requirement == "" {
			profile.Requirement = existing.Requirement
		}
		if err := uow.ProfileRepository().Update(ctx, &profile); err != nil {
			return nil, err
		}
	}

	c.cache.Invalidate(userId)

	return profileToResponse(&profile), nil
}

func (c *profileService) Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	if cached, ok := c.cache.Get(userId); ok {
		return profileToResponse(cached), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	c.cache.Save(profile)
	return profileToResponse(profile), nil
}

func profileToResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Gender:        p.Gender,
		Province:      p.Province,
		ExamYear:      p.ExamYear,
		SubjectChoice: p.SubjectChoice,
		Score:         p.Score,
		Rank:          p.Rank,
		Batch:         p.Batch,
		Requirement:   p.Requirement,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
