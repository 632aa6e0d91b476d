package middleware

import (
	"errors"

	"lms-educate/apperr"
	"lms-educate/database"
	"lms-educate/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser resolves the verified subject id set by JWTMiddleware to its
// mirrored user row. Handlers treat a missing row the same as a missing
// token: the identity provider is the source of truth for subjects.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// ErrorResponse maps a core error to its status class. The kind travels in
// the payload so callers can tell exactly which rule or invariant failed.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return JsonResponse(c, apperr.HTTPStatus(err), false, e.Message, fiber.Map{
			"kind": e.Kind,
		})
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
