package middleware

import (
	"strings"

	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("claims", claims)
		return ctx.Next()
	}
}

// RejectGuests keeps guest sessions away from routes that need a real
// account behind the token.
func RejectGuests() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, ok := ctx.Locals("claims").(helper.Claims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		if claims.Guest {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "guest access only, register to continue",
			})
		}
		return ctx.Next()
	}
}
