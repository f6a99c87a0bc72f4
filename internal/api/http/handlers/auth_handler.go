package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/service"
	"github.com/spec-kit/hr-portal/internal/validator"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// AuthHandler exposes the portal login.
type AuthHandler struct {
	auth      *service.AuthService
	validator *validator.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, v *validator.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validator: v}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	employee, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"employee": employeeResponse(*employee),
			"auth":     dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
