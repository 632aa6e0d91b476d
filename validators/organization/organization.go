package organizationValidator

import (
	"strconv"
	"strings"

	"lms-educate/middleware"
	"lms-educate/models"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, param string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateOrganization validates the organization creation request
func CreateOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			PlanTier string `json:"plan_tier"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.PlanTier = strings.TrimSpace(reqData.PlanTier)

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.PlanTier == "" {
			reqData.PlanTier = "FREE"
		} else {
			validTiers := map[string]bool{"FREE": true, "TEAM": true, "ENTERPRISE": true}
			if !validTiers[reqData.PlanTier] {
				errors["plan_tier"] = "Plan tier must be FREE, TEAM, or ENTERPRISE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrganization", reqData)
		return c.Next()
	}
}

// GetOrganization validates the organization id path parameter
func GetOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := parseIDParam(c, "org_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Organization ID!", nil)
		}

		c.Locals("orgID", orgID)
		return c.Next()
	}
}

// AddMember validates the add-member request
func AddMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := parseIDParam(c, "org_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Organization ID!", nil)
		}

		reqData := new(struct {
			UserID uint   `json:"user_id"`
			Role   string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}

		reqData.Role = strings.TrimSpace(reqData.Role)
		validRoles := map[string]bool{
			models.RoleOwner:      true,
			models.RoleInstructor: true,
			models.RoleLearner:    true,
		}
		if !validRoles[reqData.Role] {
			errors["role"] = "Role must be OWNER, INSTRUCTOR, or LEARNER!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("orgID", orgID)
		c.Locals("validatedMember", reqData)
		return c.Next()
	}
}

// RemoveMember validates the remove-member path parameters
func RemoveMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := parseIDParam(c, "org_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Organization ID!", nil)
		}
		memberID, ok := parseIDParam(c, "user_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("orgID", orgID)
		c.Locals("memberID", memberID)
		return c.Next()
	}
}

// ListMembers validates the member listing path parameter
func ListMembers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := parseIDParam(c, "org_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Organization ID!", nil)
		}

		c.Locals("orgID", orgID)
		return c.Next()
	}
}
