package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"lms-educate/database"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var emailSeq uint64

// NewDB opens an isolated in-memory database with the production schema,
// including the partial unique indexes the invariants rely on.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// An in-memory sqlite database lives on a single connection; limiting the
	// pool also serializes concurrent transactions in tests.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewUser creates a subject row with the given global role.
func NewUser(t *testing.T, db *gorm.DB, role string, active bool) models.User {
	t.Helper()

	u := models.User{
		Name:     "Test " + role,
		Email:    fmt.Sprintf("user%d@test.local", atomic.AddUint64(&emailSeq, 1)),
		Role:     role,
		IsActive: active,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	// IsActive carries a default:true tag, so GORM drops the zero-valued
	// field from the INSERT and backfills true; persist false explicitly.
	if !active {
		if err := db.Model(&u).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate user: %v", err)
		}
		u.IsActive = false
	}
	return u
}

// NewOrg creates an organization.
func NewOrg(t *testing.T, db *gorm.DB, name string) models.Organization {
	t.Helper()

	org := models.Organization{
		PublicID: fmt.Sprintf("org-%d", atomic.AddUint64(&emailSeq, 1)),
		Name:     name,
		PlanTier: "FREE",
		Status:   "ACTIVE",
	}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("create organization: %v", err)
	}
	return org
}

// NewMembership links a user to an organization with the given role.
func NewMembership(t *testing.T, db *gorm.DB, user models.User, org models.Organization, role string) models.Membership {
	t.Helper()

	m := models.Membership{UserID: user.ID, OrganizationID: org.ID, Role: role}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
	return m
}

// NewCourse creates a course in the organization.
func NewCourse(t *testing.T, db *gorm.DB, org models.Organization, ownerID *uint, published bool) courseModels.Course {
	t.Helper()

	c := courseModels.Course{
		OrganizationID: org.ID,
		OwnerID:        ownerID,
		Title:          "Test Course",
		Description:    "A course used in tests.",
		IsPublished:    published,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

// NewSubCourse creates a sub-course at the given order index.
func NewSubCourse(t *testing.T, db *gorm.DB, courseID uint, title string, order int) courseModels.SubCourse {
	t.Helper()

	sc := courseModels.SubCourse{CourseID: courseID, Title: title, OrderIndex: order}
	if err := db.Create(&sc).Error; err != nil {
		t.Fatalf("create sub-course: %v", err)
	}
	return sc
}

// NewUnit creates a lesson unit at the given order index.
func NewUnit(t *testing.T, db *gorm.DB, subCourseID uint, title string, order int) courseModels.Unit {
	t.Helper()

	u := courseModels.Unit{
		SubCourseID: subCourseID,
		Kind:        courseModels.UnitLesson,
		Title:       title,
		OrderIndex:  order,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}
	return u
}
