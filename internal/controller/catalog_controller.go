package controller

import (
	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/pkg/serverutils"
	"ai-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	SearchColleges(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("colleges", c.SearchColleges)
}

func (c *catalogController) SearchColleges(ctx *fiber.Ctx) error {
	var req dto.SearchCollegesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SearchColleges(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search colleges", res))
}
