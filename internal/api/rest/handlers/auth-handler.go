package handlers

import (
	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/helper/utils"
	"github.com/campusboard/board-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Post("/find-password", h.FindPassword)
	auth.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "name and a valid email are required")
	}

	if err := h.svc.Register(requestBody); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "verification email sent")
}

func (h *AuthHandler) VerifyEmail(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyEmailRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "token and a password of at least 6 characters are required")
	}

	if err := h.svc.VerifyEmail(requestBody); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "registration completed")
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	tokens, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, tokens)
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	var requestBody dto.LogoutRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "refresh token is required")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "refresh token is required")
	}

	if err := h.svc.Logout(requestBody.RefreshToken); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *AuthHandler) FindPassword(ctx *fiber.Ctx) error {
	var requestBody dto.FindPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "name and a valid email are required")
	}

	if err := h.svc.FindPassword(requestBody); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password reset email sent")
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "token and a password of at least 6 characters are required")
	}

	if err := h.svc.ResetPassword(requestBody); err != nil {
		return utils.ResponseError(ctx, apperrors.ToHTTPStatus(err), apperrors.Message(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password reset successfully")
}
