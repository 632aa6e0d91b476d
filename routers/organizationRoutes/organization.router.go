package organizationRoutes

import (
	controllers "lms-educate/controllers/organization"
	"lms-educate/middleware"
	validators "lms-educate/validators/organization"

	"github.com/gofiber/fiber/v2"
)

// SetupOrganizationRoutes sets up organization and membership management.
// These routes live under the owner prefix; the RouteGuard bounces other
// roles to their own landing area before any handler runs.
func SetupOrganizationRoutes(app *fiber.App) {
	orgGroup := app.Group("/owner/orgs", middleware.JWTMiddleware, middleware.RouteGuard)

	orgGroup.Post("/", validators.CreateOrganization(), controllers.CreateOrganization)
	orgGroup.Get("/:org_id", validators.GetOrganization(), controllers.GetOrganization)

	// Membership management
	orgGroup.Get("/:org_id/members", validators.ListMembers(), controllers.ListMembers)
	orgGroup.Post("/:org_id/members", validators.AddMember(), controllers.AddMember)
	orgGroup.Delete("/:org_id/members/:user_id", validators.RemoveMember(), controllers.RemoveMember)
}
