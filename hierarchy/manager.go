package hierarchy

import (
	"errors"

	"lms-educate/apperr"
	"lms-educate/authz"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/gorm"
)

// Manager performs all structural mutation of the Organization → Course →
// SubCourse → Unit tree. Every invariant-bearing operation (insert with
// shift, reorder, delete with recompaction, move) runs inside one database
// transaction, so a failed step leaves no partial state behind. Authorization
// is always checked against the parent scope: children inherit access from
// their ancestor chain instead of carrying ACLs of their own.
type Manager struct {
	DB *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{DB: db}
}

func loadCourse(tx *gorm.DB, id uint) (*courseModels.Course, error) {
	var c courseModels.Course
	if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Course not found!")
		}
		return nil, err
	}
	return &c, nil
}

func loadSubCourse(tx *gorm.DB, id uint) (*courseModels.SubCourse, error) {
	var sc courseModels.SubCourse
	if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&sc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Sub-course not found!")
		}
		return nil, err
	}
	return &sc, nil
}

func loadUnit(tx *gorm.DB, id uint) (*courseModels.Unit, error) {
	var u courseModels.Unit
	if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Unit not found!")
		}
		return nil, err
	}
	return &u, nil
}

// authorizeCourseScope checks the actor against a course-rooted scope. The
// organization id comes from the course row itself, which is the only place
// a node's tenancy is recorded.
func authorizeCourseScope(tx *gorm.DB, actor models.User, action authz.Action, c *courseModels.Course) error {
	return authz.Authorize(tx, actor, action, c.OrganizationID, c)
}
