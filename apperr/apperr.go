package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies the exact cause of a rejected operation. Handlers map kinds
// to HTTP status classes and tests assert on them directly.
type Kind string

const (
	KindSubjectInactive    Kind = "SUBJECT_INACTIVE"
	KindRoleForbidden      Kind = "ROLE_FORBIDDEN"
	KindCrossTenantMove    Kind = "CROSS_TENANT_MOVE"
	KindNotFound           Kind = "NOT_FOUND"
	KindAlreadyEnrolled    Kind = "ALREADY_ENROLLED"
	KindProgressRegression Kind = "PROGRESS_REGRESSION"
	KindInvalidReorder     Kind = "INVALID_REORDER"
	KindHasDependents      Kind = "HAS_DEPENDENTS"
	KindCourseNotAvailable Kind = "COURSE_NOT_AVAILABLE"
	KindInvariantViolation Kind = "INVARIANT_VIOLATION"
	KindValidation         Kind = "VALIDATION_FAILED"
)

// Error carries a kind plus a caller-facing message. Rejections are never
// reported as a generic failure; every path constructs one of the kinds above.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from err, or "" when err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is an apperr.Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to its caller-visible status class.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindSubjectInactive, KindRoleForbidden, KindCrossTenantMove:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAlreadyEnrolled, KindProgressRegression, KindInvalidReorder,
		KindHasDependents, KindCourseNotAvailable, KindInvariantViolation:
		return fiber.StatusConflict
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
