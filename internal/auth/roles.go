package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/domain"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) > 0 && !principal.HasRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated. Every employee counts as a portal user.
func RequireAnyRole() fiber.Handler {
	return RequireRole()
}
