package controllers

import (
	"lms-educate/database"
	"lms-educate/hierarchy"
	"lms-educate/middleware"
	courseModels "lms-educate/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateSubCourse adds a sub-course to a course, appending at the end unless
// an explicit order index is supplied.
func CreateSubCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedSubCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	subCourse, err := manager.CreateSubCourse(user, uint(courseID), hierarchy.SubCourseAttrs{
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sub-course created successfully!", subCourse)
}

// UpdateSubCourse updates sub-course attributes.
func UpdateSubCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	reqData, ok := c.Locals("validatedSubCourseUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	subCourse, err := manager.UpdateSubCourse(user, uint(subCourseID), hierarchy.SubCourseAttrs{
		Title:       reqData.Title,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-course updated successfully!", subCourse)
}

// ReorderSubCourses applies a full new ordering to a course's sub-courses.
func ReorderSubCourses(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReorder").(*struct {
		OrderedIDs []uint `json:"ordered_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	if err := manager.ReorderSubCourses(user, uint(courseID), reqData.OrderedIDs); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-courses reordered successfully!", nil)
}

// DeleteSubCourse deletes a sub-course with its units and recompacts the
// remaining siblings.
func DeleteSubCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	manager := hierarchy.NewManager(database.Database.Db)
	if err := manager.DeleteSubCourse(user, uint(subCourseID)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-course deleted successfully!", nil)
}

// MoveSubCourse reparents a sub-course onto another course within the same
// organization.
func MoveSubCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	reqData, ok := c.Locals("validatedMove").(*struct {
		NewCourseID uint `json:"new_course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	subCourse, err := manager.MoveSubCourse(user, uint(subCourseID), reqData.NewCourseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-course moved successfully!", subCourse)
}

// ListSubCourses lists a course's sub-courses in stored order.
func ListSubCourses(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sub-courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-courses fetched successfully!", fiber.Map{
		"sub_courses": subCourses,
	})
}
