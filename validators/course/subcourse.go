package courseValidator

import (
	"lms-educate/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateSubCourse validates the sub-course creation request
func CreateSubCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSubCourse", reqData)
		return c.Next()
	}
}

// UpdateSubCourse validates the sub-course update request
func UpdateSubCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subCourseID, ok := parseIDParam(c, "sub_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Sub-course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("subCourseID", subCourseID)
		c.Locals("validatedSubCourseUpdate", reqData)
		return c.Next()
	}
}

// Reorder validates a reorder request body against a course id parameter
func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			OrderedIDs []uint `json:"ordered_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.OrderedIDs) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"ordered_ids": "Ordered IDs are required!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

// SubCourseIDParam validates routes that only carry a sub-course id
func SubCourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subCourseID, ok := parseIDParam(c, "sub_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Sub-course ID!", nil)
		}

		c.Locals("subCourseID", subCourseID)
		return c.Next()
	}
}

// MoveSubCourse validates the cross-course move request
func MoveSubCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subCourseID, ok := parseIDParam(c, "sub_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Sub-course ID!", nil)
		}

		reqData := new(struct {
			NewCourseID uint `json:"new_course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.NewCourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"new_course_id": "New course ID is required!",
			})
		}

		c.Locals("subCourseID", subCourseID)
		c.Locals("validatedMove", reqData)
		return c.Next()
	}
}
