package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms-educate/config"
	"lms-educate/database"
	"lms-educate/middleware"
	"lms-educate/models"
	courseModels "lms-educate/models/course"
	"lms-educate/testutil"
	validators "lms-educate/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	db := testutil.NewDB(t)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	group := app.Group("/learner", middleware.JWTMiddleware, middleware.RouteGuard)
	group.Get("/course/list", validators.CourseList(), GetPublishedCourses)
	group.Get("/course/:id", validators.CourseIDParam(), GetCourseDetails)
	return app, db
}

func learnerGet(t *testing.T, app *fiber.App, path string, learner models.User) *http.Response {
	t.Helper()

	token, err := middleware.GenerateJWT(learner.ID, learner.Name, learner.Role, learner.Email, learner.IsActive)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, data interface{}) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Status bool            `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.True(t, envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, data))
}

func TestGetPublishedCoursesListsOnlyPublished(t *testing.T) {
	app, db := newCatalogApp(t)

	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)

	testutil.NewCourse(t, db, org, nil, true)
	testutil.NewCourse(t, db, org, nil, false)

	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	resp := learnerGet(t, app, "/learner/course/list?page=1&limit=10", learner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Courses    []courseModels.Course `json:"courses"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeBody(t, resp, &data)
	assert.Len(t, data.Courses, 1)
	assert.Equal(t, int64(1), data.Pagination.Total)
}

func TestGetCourseDetails(t *testing.T) {
	app, db := newCatalogApp(t)

	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)

	course := testutil.NewCourse(t, db, org, nil, true)
	sc := testutil.NewSubCourse(t, db, course.ID, "Week 1", 0)

	visible := testutil.NewUnit(t, db, sc.ID, "Intro", 0)
	require.NoError(t, db.Model(&visible).Update("is_published", true).Error)
	testutil.NewUnit(t, db, sc.ID, "Draft lesson", 1)

	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	resp := learnerGet(t, app, fmt.Sprintf("/learner/course/%d", course.ID), learner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		SubCourses []courseModels.SubCourse       `json:"sub_courses"`
		Units      map[string][]courseModels.Unit `json:"units"`
		IsEnrolled bool                           `json:"is_enrolled"`
	}
	decodeBody(t, resp, &data)
	require.Len(t, data.SubCourses, 1)
	assert.Len(t, data.Units[fmt.Sprintf("%d", sc.ID)], 1)
	assert.False(t, data.IsEnrolled)
}

func TestGetCourseDetailsHidesDraftCourses(t *testing.T) {
	app, db := newCatalogApp(t)

	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)

	draft := testutil.NewCourse(t, db, org, nil, false)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	resp := learnerGet(t, app, fmt.Sprintf("/learner/course/%d", draft.ID), learner)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
