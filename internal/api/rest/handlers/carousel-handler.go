package handlers

import (
	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/helper/utils"
	"github.com/campusboard/board-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CarouselHandler struct {
	svc services.CarouselService
}

func NewCarouselHandler(svc services.CarouselService) *CarouselHandler {
	return &CarouselHandler{svc: svc}
}

func (h *CarouselHandler) SetupRoutes(api fiber.Router, guard fiber.Handler) {
	carousel := api.Group("/carousel")

	carousel.Get("/", h.GetFeaturedPosts)
	carousel.Post("/feature", guard, h.FeaturePost)
	carousel.Post("/unfeature", guard, h.UnfeaturePost)
}

func (h *CarouselHandler) FeaturePost(ctx *fiber.Ctx) error {
	var requestBody dto.CarouselRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "board_id and post_id are required")
	}

	post, err := h.svc.FeaturePost(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, post)
}

func (h *CarouselHandler) UnfeaturePost(ctx *fiber.Ctx) error {
	var requestBody dto.CarouselRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "board_id and post_id are required")
	}

	post, err := h.svc.UnfeaturePost(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, post)
}

func (h *CarouselHandler) GetFeaturedPosts(ctx *fiber.Ctx) error {
	posts, err := h.svc.GetFeaturedPosts()
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, posts)
}
