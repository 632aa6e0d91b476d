package hierarchy

import (
	"lms-educate/apperr"
	"lms-educate/authz"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/gorm"
)

// CourseAttrs carries the writable course fields. Empty strings and nil
// pointers mean "leave unchanged" on update.
type CourseAttrs struct {
	Title       string
	Description string
	OwnerID     *uint
}

// ownerOfRecordIsMember rejects an instructor-of-record assignment when the
// candidate is not a live member of the course's organization.
func ownerOfRecordIsMember(tx *gorm.DB, organizationID, userID uint) error {
	var m models.Membership
	err := tx.Where("user_id = ? AND organization_id = ? AND is_deleted = ?",
		userID, organizationID, false).First(&m).Error
	if err != nil {
		return apperr.New(apperr.KindInvariantViolation, "Course owner must be a member of the organization!")
	}
	return nil
}

// CreateCourse creates a new course under an organization.
func (m *Manager) CreateCourse(actor models.User, organizationID uint, attrs CourseAttrs) (*courseModels.Course, error) {
	var created courseModels.Course
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
			return apperr.New(apperr.KindNotFound, "Organization not found!")
		}

		if err := authz.Authorize(tx, actor, authz.ActionCreate, organizationID, nil); err != nil {
			return err
		}

		if attrs.OwnerID != nil {
			if err := ownerOfRecordIsMember(tx, organizationID, *attrs.OwnerID); err != nil {
				return err
			}
		}

		created = courseModels.Course{
			OrganizationID: organizationID,
			OwnerID:        attrs.OwnerID,
			Title:          attrs.Title,
			Description:    attrs.Description,
			IsPublished:    false,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCourse updates course attributes. OrganizationID is immutable and is
// not part of the attrs on purpose.
func (m *Manager) UpdateCourse(actor models.User, courseID uint, attrs CourseAttrs) (*courseModels.Course, error) {
	var updated *courseModels.Course
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		c, err := loadCourse(tx, courseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionUpdate, c); err != nil {
			return err
		}

		if attrs.Title != "" {
			c.Title = attrs.Title
		}
		if attrs.Description != "" {
			c.Description = attrs.Description
		}
		if attrs.OwnerID != nil {
			if err := ownerOfRecordIsMember(tx, c.OrganizationID, *attrs.OwnerID); err != nil {
				return err
			}
			c.OwnerID = attrs.OwnerID
		}

		updated = c
		return tx.Save(c).Error
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetCoursePublished flips the published flag, which controls learner
// visibility and enrollment availability.
func (m *Manager) SetCoursePublished(actor models.User, courseID uint, published bool) (*courseModels.Course, error) {
	var updated *courseModels.Course
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		c, err := loadCourse(tx, courseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionUpdate, c); err != nil {
			return err
		}

		c.IsPublished = published
		updated = c
		return tx.Save(c).Error
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCourse soft deletes a course and everything beneath it. A course with
// live enrollments is never deleted; the caller must resolve those first, so
// progress data is never dropped silently.
func (m *Manager) DeleteCourse(actor models.User, courseID uint) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		c, err := loadCourse(tx, courseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionDelete, c); err != nil {
			return err
		}

		var enrollments int64
		if err := tx.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Count(&enrollments).Error; err != nil {
			return err
		}
		if enrollments > 0 {
			return apperr.New(apperr.KindHasDependents, "Course has active enrollments!")
		}

		subIDs, err := subCourseScope(courseID).liveChildIDs(tx)
		if err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Model(&courseModels.Unit{}).
				Where("sub_course_id IN ?", subIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&courseModels.SubCourse{}).
				Where("course_id = ?", courseID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		c.IsDeleted = true
		return tx.Save(c).Error
	})
}
