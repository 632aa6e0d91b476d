package middleware

import (
	"strings"

	"lms-educate/models"

	"github.com/gofiber/fiber/v2"
)

// rolePrefixes is the static coarse-role table consulted before any
// fine-grained authorization decision.
var rolePrefixes = []struct {
	prefix string
	role   string
}{
	{"/owner", models.RoleOwner},
	{"/instructor", models.RoleInstructor},
	{"/learner", models.RoleLearner},
}

// landing maps a global role to its own area of the site.
func landing(role string) string {
	switch role {
	case models.RoleOwner:
		return "/owner"
	case models.RoleInstructor:
		return "/instructor"
	default:
		return "/learner"
	}
}

// RouteGuard checks the request path prefix against the subject's global
// role. A subject in the wrong area is redirected to their own landing
// prefix rather than denied; the fine-grained decision happens later in the
// handler. Must run after JWTMiddleware.
func RouteGuard(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	path := c.Path()
	for _, entry := range rolePrefixes {
		if strings.HasPrefix(path, entry.prefix) {
			if role != entry.role {
				return c.Redirect(landing(role), fiber.StatusSeeOther)
			}
			break
		}
	}
	return c.Next()
}
