package controllers

import (
	"encoding/json"

	"lms-educate/database"
	"lms-educate/hierarchy"
	"lms-educate/middleware"
	courseModels "lms-educate/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateUnit adds a lesson or quiz unit to a sub-course.
func CreateUnit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	reqData, ok := c.Locals("validatedUnit").(*struct {
		Kind        string          `json:"kind"`
		Title       string          `json:"title"`
		TextContent string          `json:"text_content"`
		VideoURL    string          `json:"video_url"`
		QuizOptions json.RawMessage `json:"quiz_options"`
		OrderIndex  *int            `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	unit, err := manager.CreateUnit(user, uint(subCourseID), hierarchy.UnitAttrs{
		Kind:        reqData.Kind,
		Title:       reqData.Title,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		QuizOptions: datatypes.JSON(reqData.QuizOptions),
		OrderIndex:  reqData.OrderIndex,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unit created successfully!", unit)
}

// UpdateUnit updates unit content or flips its published flag.
func UpdateUnit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitID := c.Locals("unitID").(int)

	reqData, ok := c.Locals("validatedUnitUpdate").(*struct {
		Title       string          `json:"title"`
		TextContent string          `json:"text_content"`
		VideoURL    string          `json:"video_url"`
		QuizOptions json.RawMessage `json:"quiz_options"`
		IsPublished *bool           `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	unit, err := manager.UpdateUnit(user, uint(unitID), hierarchy.UnitAttrs{
		Title:       reqData.Title,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		QuizOptions: datatypes.JSON(reqData.QuizOptions),
	}, reqData.IsPublished)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit updated successfully!", unit)
}

// ReorderUnits applies a full new ordering to a sub-course's units.
func ReorderUnits(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	reqData, ok := c.Locals("validatedReorder").(*struct {
		OrderedIDs []uint `json:"ordered_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	manager := hierarchy.NewManager(database.Database.Db)
	if err := manager.ReorderUnits(user, uint(subCourseID), reqData.OrderedIDs); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units reordered successfully!", nil)
}

// DeleteUnit deletes a unit and recompacts its siblings.
func DeleteUnit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitID := c.Locals("unitID").(int)

	manager := hierarchy.NewManager(database.Database.Db)
	if err := manager.DeleteUnit(user, uint(unitID)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit deleted successfully!", nil)
}

// ListUnits lists a sub-course's units in stored order.
func ListUnits(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subCourseID := c.Locals("subCourseID").(int)

	var subCourse courseModels.SubCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", subCourseID, false).First(&subCourse).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sub-course not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", subCourse.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := authorizeRead(user, &course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var units []courseModels.Unit
	if err := database.Database.Db.Where("sub_course_id = ? AND is_deleted = ?", subCourseID, false).
		Order("order_index asc").Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully!", fiber.Map{
		"units": units,
	})
}
