package controllers

import (
	"lms-educate/database"
	"lms-educate/membership"
	"lms-educate/middleware"
	"lms-educate/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrganization creates a new organization with the caller as its
// founding Owner member. This is the bootstrap path: the first Owner is
// established here inside the creation transaction, never through AddMember.
func CreateOrganization(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Subject is inactive!", nil)
	}
	if user.Role != models.RoleOwner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Owner only.", nil)
	}

	reqData, ok := c.Locals("validatedOrganization").(*struct {
		Name     string `json:"name"`
		PlanTier string `json:"plan_tier"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	org := models.Organization{
		PublicID: uuid.NewString(),
		Name:     reqData.Name,
		PlanTier: reqData.PlanTier,
		Status:   "ACTIVE",
	}

	var founding *models.Membership
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		m, err := membership.BootstrapOwner(tx, org.ID, user.ID)
		if err != nil {
			return err
		}
		founding = m
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create organization!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Organization created successfully!", fiber.Map{
		"organization": org,
		"membership":   founding,
	})
}

// GetOrganization returns an organization the caller belongs to.
func GetOrganization(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orgID := c.Locals("orgID").(int)

	var org models.Organization
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", orgID, false).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	registry := membership.NewRegistry(database.Database.Db)
	isMember, err := registry.IsMember(user.ID, org.ID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if !isMember {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission for this action!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Organization fetched successfully!", org)
}
