package controllers

import (
	"lms-educate/authz"
	"lms-educate/database"
	"lms-educate/middleware"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"github.com/gofiber/fiber/v2"
)

// authorizeRead runs the fine-grained read decision for a course-rooted
// resource.
func authorizeRead(user models.User, course *courseModels.Course) error {
	return authz.Authorize(database.Database.Db, user, authz.ActionRead, course.OrganizationID, course)
}

// GetPublishedCourses lists the published-course catalog for learners.
func GetPublishedCourses(c *fiber.Ctx) error {
	_, ok := middleware.CurrentUser(c)
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

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a published course with its ordered sub-courses
// and their published units, plus the caller's enrollment state.
func GetCourseDetails(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := authorizeRead(user, &course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var subCourses []courseModels.SubCourse
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&subCourses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
	}

	units := make(map[uint][]courseModels.Unit, len(subCourses))
	for _, sc := range subCourses {
		var scUnits []courseModels.Unit
		if err := database.Database.Db.Where("sub_course_id = ? AND is_deleted = ? AND is_published = ?", sc.ID, false, true).
			Order("order_index asc").Find(&scUnits).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
		}
		units[sc.ID] = scUnits
	}

	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		user.ID, courseID, false).First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"sub_courses": subCourses,
		"units":       units,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
