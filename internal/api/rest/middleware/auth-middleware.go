package middleware

import (
	"strings"

	"github.com/campusboard/board-service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the access token from the cookie or the
// Authorization header and stores the claims in locals.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyAccessToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", claims.UserID)
		ctx.Locals("user", claims)
		return ctx.Next()
	}
}
