package courseRoutes

import (
	controllers "lms-educate/controllers/course"
	"lms-educate/middleware"
	validators "lms-educate/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupManagementRoutes registers the course-tree management surface under
// both the owner and instructor prefixes. The handlers are shared: the
// RouteGuard only checks the coarse role for the prefix, and the
// authorization engine decides per action whether this particular owner or
// instructor may touch this particular course.
func SetupManagementRoutes(app *fiber.App) {
	for _, prefix := range []string{"/owner/course", "/instructor/course"} {
		group := app.Group(prefix, middleware.JWTMiddleware, middleware.RouteGuard)

		// Course CRUD
		group.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
		group.Put("/:id", validators.UpdateCourse(), controllers.UpdateCourse)
		group.Delete("/:id", validators.CourseIDParam(), controllers.DeleteCourse)
		group.Post("/:id/publish", validators.CourseIDParam(), controllers.PublishCourse)
		group.Post("/:id/unpublish", validators.CourseIDParam(), controllers.UnpublishCourse)

		// Sub-course management
		group.Get("/:id/subcourses", validators.CourseIDParam(), controllers.ListSubCourses)
		group.Post("/:id/subcourse", validators.CreateSubCourse(), controllers.CreateSubCourse)
		group.Post("/:id/subcourses/reorder", validators.Reorder(), controllers.ReorderSubCourses)
		group.Put("/subcourse/:sub_id", validators.UpdateSubCourse(), controllers.UpdateSubCourse)
		group.Delete("/subcourse/:sub_id", validators.SubCourseIDParam(), controllers.DeleteSubCourse)
		group.Post("/subcourse/:sub_id/move", validators.MoveSubCourse(), controllers.MoveSubCourse)

		// Unit management
		group.Get("/subcourse/:sub_id/units", validators.SubCourseIDParam(), controllers.ListUnits)
		group.Post("/subcourse/:sub_id/unit", validators.CreateUnit(), controllers.CreateUnit)
		group.Post("/subcourse/:sub_id/units/reorder", validators.ReorderUnits(), controllers.ReorderUnits)
		group.Put("/unit/:unit_id", validators.UpdateUnit(), controllers.UpdateUnit)
		group.Delete("/unit/:unit_id", validators.UnitIDParam(), controllers.DeleteUnit)
	}
}
