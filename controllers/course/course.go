package controllers

import (
	"lms-educate/database"
	"lms-educate/hierarchy"
	"lms-educate/middleware"
	"lms-educate/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course under an organization.
func CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		OrganizationID uint   `json:"organization_id"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		OwnerID        *uint  `json:"owner_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	course, err := manager.CreateCourse(user, reqData.OrganizationID, hierarchy.CourseAttrs{
		Title:       reqData.Title,
		Description: reqData.Description,
		OwnerID:     reqData.OwnerID,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course attributes.
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OwnerID     *uint  `json:"owner_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	course, err := manager.UpdateCourse(user, uint(courseID), hierarchy.CourseAttrs{
		Title:       reqData.Title,
		Description: reqData.Description,
		OwnerID:     reqData.OwnerID,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse makes a course visible and enrollable for learners.
func PublishCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	manager := hierarchy.NewManager(database.Database.Db)
	course, err := manager.SetCoursePublished(user, uint(courseID), true)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	// Best-effort notification once the publish is committed.
	go utils.NotifyCoursePublished(course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// UnpublishCourse takes a course out of the learner catalog.
func UnpublishCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	manager := hierarchy.NewManager(database.Database.Db)
	course, err := manager.SetCoursePublished(user, uint(courseID), false)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unpublished successfully!", course)
}

// DeleteCourse deletes a course and its subtree. Courses with active
// enrollments are rejected with HAS_DEPENDENTS.
func DeleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	manager := hierarchy.NewManager(database.Database.Db)
	if err := manager.DeleteCourse(user, uint(courseID)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
