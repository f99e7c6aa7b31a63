package service

import (
	"context"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ICatalogService interface {
	SearchColleges(ctx context.Context, req *dto.SearchCollegesRequest) (*dto.SearchCollegesResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
	}
}

func (c *catalogService) SearchColleges(ctx context.Context, req *dto.SearchCollegesRequest) (*dto.SearchCollegesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filters := make([]specification.Specification, 0)
	if req.Name != "" {
		filters = append(filters, specification.NameLike{Name: req.Name})
	}
	if len(req.Provinces) > 0 {
		filters = append(filters, specification.ProvinceIn{Provinces: req.Provinces})
	}
	if len(req.Categories) > 0 {
		filters = append(filters, specification.CategoryIn{Categories: req.Categories})
	}
	if len(req.Natures) > 0 {
		filters = append(filters, specification.NatureTypeIn{NatureTypes: req.Natures})
	}

	total, err := uow.CollegeRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(append([]specification.Specification(nil), filters...),
		specification.OrderBy{Field: "ranking"},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	colleges, err := uow.CollegeRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CollegeResponse, 0, len(colleges))
	for _, college := range colleges {
		result = append(result, &dto.CollegeResponse{
			Id:         college.Id,
			Name:       college.CnName,
			Province:   college.ProvinceName,
			Category:   college.Category,
			NatureType: college.NatureType,
			Ranking:    college.Ranking,
			Features:   college.Features,
		})
	}

	return &dto.SearchCollegesResponse{
		Colleges: result,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
