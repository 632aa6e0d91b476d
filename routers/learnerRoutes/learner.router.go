package learnerRoutes

import (
	controllers "lms-educate/controllers/course"
	"lms-educate/middleware"
	validators "lms-educate/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupLearnerRoutes sets up the learner-facing catalog and enrollment routes
func SetupLearnerRoutes(app *fiber.App) {
	learnerGroup := app.Group("/learner", middleware.JWTMiddleware, middleware.RouteGuard)

	// Catalog (published courses only)
	learnerGroup.Get("/course/list", validators.CourseList(), controllers.GetPublishedCourses)
	learnerGroup.Get("/course/:id", validators.CourseIDParam(), controllers.GetCourseDetails)

	// Enrollment lifecycle
	learnerGroup.Post("/course/:id/enroll", validators.EnrollCourse(), controllers.EnrollInCourse)
	learnerGroup.Delete("/course/:id/enroll", validators.EnrollCourse(), controllers.UnenrollFromCourse)
	learnerGroup.Put("/course/:id/progress", validators.UpdateProgress(), controllers.UpdateProgress)

	// Own enrollments
	learnerGroup.Get("/enrollments", validators.CourseList(), controllers.GetEnrollments)
}
