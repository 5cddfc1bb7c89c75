package utils

import "github.com/gofiber/fiber/v2"

// ResponseError and ResponseSuccess keep every endpoint on the same
// {"error": ...} / {"data": ...} envelope.

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}
