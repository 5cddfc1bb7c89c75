package handlers

import (
	"errors"

	"github.com/SehaTech/auth_service/internal/api/rest/middleware"
	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/SehaTech/auth_service/internal/dto"
	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/SehaTech/auth_service/internal/helper/utils"
	"github.com/SehaTech/auth_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc  services.AuthService
	auth helper.Auth
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")

	// Public
	auth.Post("/register", h.Register)
	auth.Post("/resend-otp", h.ResendOtp)
	auth.Post("/verify-otp", h.VerifyOtp)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
	auth.Post("/guest-login", h.GuestLogin)

	// Protected
	auth.Get("/me", middleware.AuthMiddleware(h.auth), middleware.RejectGuests(), h.Me)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if requestBody.FullName == "" || requestBody.Mobile == "" || requestBody.Password == "" || requestBody.Type == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.Register(ctx.UserContext(), requestBody)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *AuthHandler) ResendOtp(ctx *fiber.Ctx) error {
	var requestBody dto.ResendOtpRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Mobile == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "mobile is required")
	}

	resp, err := h.svc.ResendOtp(ctx.UserContext(), requestBody.Mobile)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) VerifyOtp(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyOtpRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Mobile == "" || requestBody.Code == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "mobile and code are required")
	}

	resp, err := h.svc.VerifyOtp(ctx.UserContext(), requestBody.Mobile, requestBody.Code)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Mobile == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "mobile and password are required")
	}

	resp, err := h.svc.Login(ctx.UserContext(), requestBody.Mobile, requestBody.Password)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Mobile == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "mobile is required")
	}

	resp, err := h.svc.ForgotPassword(ctx.UserContext(), requestBody.Mobile)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Mobile == "" || requestBody.Otp == "" || requestBody.NewPassword == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.ResetPassword(ctx.UserContext(), requestBody)
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) GuestLogin(ctx *fiber.Ctx) error {
	resp, err := h.svc.GuestLogin()
	if err != nil {
		return respondAuthError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.svc.Authenticate(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

// respondAuthError maps the service failure taxonomy onto HTTP. Blocked and
// RateLimited additionally carry a wait so clients can show a countdown.
func respondAuthError(ctx *fiber.Ctx, err error) error {
	var rateLimited *domain.RateLimitedError
	if errors.As(err, &rateLimited) {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":               err.Error(),
			"retry_after_seconds": domain.SecondsCeil(rateLimited.RetryAfter),
		})
	}

	var blocked *domain.BlockedError
	if errors.As(err, &blocked) {
		return ctx.Status(fiber.StatusLocked).JSON(fiber.Map{
			"error":               err.Error(),
			"blocked_until":       blocked.Until,
			"retry_after_seconds": domain.SecondsCeil(blocked.RetryAfter),
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPolicyViolation):
		status = fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidIdentifier):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrOTPNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrOTPExpired), errors.Is(err, domain.ErrInvalidOTP):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotVerified):
		status = fiber.StatusForbidden
	case errors.Is(err, domain.ErrPasswordMismatch):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return utils.ResponseError(ctx, status, err.Error())
}
