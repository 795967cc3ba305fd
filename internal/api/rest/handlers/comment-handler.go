package handlers

import (
	"strconv"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/helper/utils"
	"github.com/campusboard/board-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// SetupRoutes registers public reads and guarded writes.
func (h *CommentHandler) SetupRoutes(api fiber.Router, guard fiber.Handler) {
	comments := api.Group("/comments")

	comments.Get("/", h.GetAllComments)
	comments.Get("/:id", h.GetCommentByID)

	comments.Post("/", guard, h.CreateComment)
	comments.Put("/:id", guard, h.UpdateComment)
	comments.Delete("/:id", guard, h.DeleteComment)
}

func (h *CommentHandler) CreateComment(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.CreateCommentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "post_id and content are required")
	}

	comment, err := h.svc.CreateComment(userID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, comment)
}

func (h *CommentHandler) GetAllComments(ctx *fiber.Ctx) error {
	comments, err := h.svc.GetAllComments()
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, comments)
}

func (h *CommentHandler) GetCommentByID(ctx *fiber.Ctx) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid comment id")
	}

	comment, err := h.svc.GetCommentByID(id)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(ctx *fiber.Ctx) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid comment id")
	}

	var requestBody dto.UpdateCommentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "content is required")
	}

	comment, err := h.svc.UpdateComment(id, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(ctx *fiber.Ctx) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := h.svc.DeleteComment(id); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func parseIDParam(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
