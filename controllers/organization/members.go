package controllers

import (
	"lms-educate/database"
	"lms-educate/membership"
	"lms-educate/middleware"
	"lms-educate/models"

	"github.com/gofiber/fiber/v2"
)

// AddMember adds a user to an organization. The registry enforces that the
// actor is an Owner member of the org.
func AddMember(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orgID := c.Locals("orgID").(int)

	reqData, ok := c.Locals("validatedMember").(*struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	registry := membership.NewRegistry(database.Database.Db)
	m, err := registry.AddMember(user, uint(orgID), reqData.UserID, reqData.Role)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member added successfully!", m)
}

// RemoveMember removes a user from an organization. Removing the last Owner
// is rejected by the registry.
func RemoveMember(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orgID := c.Locals("orgID").(int)
	memberID := c.Locals("memberID").(int)

	registry := membership.NewRegistry(database.Database.Db)
	if err := registry.RemoveMember(user, uint(orgID), uint(memberID)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member removed successfully!", nil)
}

// ListMembers lists an organization's live memberships.
func ListMembers(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orgID := c.Locals("orgID").(int)

	registry := membership.NewRegistry(database.Database.Db)
	isMember, err := registry.IsMember(user.ID, uint(orgID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if !isMember {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission for this action!", nil)
	}

	var members []models.Membership
	if err := database.Database.Db.Where("organization_id = ? AND is_deleted = ?", orgID, false).
		Preload("User").Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched successfully!", fiber.Map{
		"members": members,
	})
}
