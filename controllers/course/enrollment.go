package controllers

import (
	"lms-educate/database"
	"lms-educate/enrollment"
	"lms-educate/middleware"
	"lms-educate/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the caller in a published course.
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	lifecycle := enrollment.NewLifecycle(database.Database.Db)
	created, err := lifecycle.Enroll(user, uint(courseID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	// Confirmation email after the enrollment is committed; failures only log.
	go utils.SendEnrollmentEmail(user.Email, user.Name, created.CourseID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", created)
}

// UnenrollFromCourse removes the caller's enrollment. A pair that was never
// enrolled reports NOT_FOUND instead of pretending the delete succeeded.
func UnenrollFromCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	lifecycle := enrollment.NewLifecycle(database.Database.Db)
	if err := lifecycle.Unenroll(user, uint(courseID)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from course successfully!", nil)
}

// UpdateProgress records the caller's new progress in an enrolled course.
func UpdateProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress *int `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lifecycle := enrollment.NewLifecycle(database.Database.Db)
	updated, err := lifecycle.UpdateProgress(user, uint(courseID), *reqData.Progress)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", updated)
}

// GetEnrollments lists the caller's enrollments with pagination.
func GetEnrollments(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lifecycle := enrollment.NewLifecycle(database.Database.Db)
	enrollments, total, err := lifecycle.ListForLearner(user, *reqData.Page, *reqData.Limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	})
}
