package middleware

import (
	"errors"
	"strings"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token, then places the actor in the
// request context and its privileges in Locals for the checks below.
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		actor, err := authService.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			if errors.Is(err, service.ErrSessionReplaced) {
				return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
			}
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.SetUserContext(service.WithActor(c.UserContext(), actor))
		c.Locals("user_id", actor.UserID.String())
		c.Locals("user_name", actor.DisplayName)
		c.Locals("user_privileges", actor.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		actor := model.Actor{Privileges: privileges}
		if actor.HasPrivilege(requiredPrivilege) {
			return c.Next()
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		actor := model.Actor{Privileges: privileges}
		for _, reqPriv := range requiredPrivileges {
			if actor.HasPrivilege(reqPriv) {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
		})
	}
}
