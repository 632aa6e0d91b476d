package courseValidator

import (
	"encoding/json"

	"lms-educate/middleware"
	courseModels "lms-educate/models/course"

	"github.com/gofiber/fiber/v2"
)

// validQuizOptions checks the quiz options payload: a non-empty JSON array
// of {text, correct} objects with at least one correct answer.
func validQuizOptions(raw json.RawMessage) bool {
	var options []struct {
		Text    string `json:"text"`
		Correct bool   `json:"correct"`
	}
	if err := json.Unmarshal(raw, &options); err != nil || len(options) < 2 {
		return false
	}
	hasCorrect := false
	for _, opt := range options {
		if opt.Text == "" {
			return false
		}
		if opt.Correct {
			hasCorrect = true
		}
	}
	return hasCorrect
}

// CreateUnit validates the unit creation request
func CreateUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subCourseID, ok := parseIDParam(c, "sub_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Sub-course ID!", nil)
		}

		reqData := new(struct {
			Kind        string          `json:"kind"`
			Title       string          `json:"title"`
			TextContent string          `json:"text_content"`
			VideoURL    string          `json:"video_url"`
			QuizOptions json.RawMessage `json:"quiz_options"`
			OrderIndex  *int            `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Kind != courseModels.UnitLesson && reqData.Kind != courseModels.UnitQuiz {
			errors["kind"] = "Kind must be LESSON or QUIZ!"
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Kind == courseModels.UnitQuiz {
			if len(reqData.QuizOptions) == 0 || !validQuizOptions(reqData.QuizOptions) {
				errors["quiz_options"] = "Quiz units need at least two options and one correct answer!"
			}
		} else if len(reqData.QuizOptions) > 0 {
			errors["quiz_options"] = "Quiz options are only valid on QUIZ units!"
		}

		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("subCourseID", subCourseID)
		c.Locals("validatedUnit", reqData)
		return c.Next()
	}
}

// UpdateUnit validates the unit update request
func UpdateUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok := parseIDParam(c, "unit_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Unit ID!", nil)
		}

		reqData := new(struct {
			Title       string          `json:"title"`
			TextContent string          `json:"text_content"`
			VideoURL    string          `json:"video_url"`
			QuizOptions json.RawMessage `json:"quiz_options"`
			IsPublished *bool           `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(reqData.QuizOptions) > 0 && !validQuizOptions(reqData.QuizOptions) {
			errors["quiz_options"] = "Quiz units need at least two options and one correct answer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("unitID", unitID)
		c.Locals("validatedUnitUpdate", reqData)
		return c.Next()
	}
}

// ReorderUnits validates a reorder request body against a sub-course id
func ReorderUnits() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subCourseID, ok := parseIDParam(c, "sub_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Sub-course ID!", nil)
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

		c.Locals("subCourseID", subCourseID)
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

// UnitIDParam validates routes that only carry a unit id
func UnitIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok := parseIDParam(c, "unit_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Unit ID!", nil)
		}

		c.Locals("unitID", unitID)
		return c.Next()
	}
}
