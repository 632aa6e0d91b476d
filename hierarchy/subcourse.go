package hierarchy

import (
	"lms-educate/apperr"
	"lms-educate/authz"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/gorm"
)

// SubCourseAttrs carries the writable sub-course fields. A nil OrderIndex on
// create means append at the end.
type SubCourseAttrs struct {
	Title       string
	Description string
	OrderIndex  *int
}

// CreateSubCourse adds a sub-course to a course. With an explicit order index
// every sibling at or after that position shifts up by one, atomically with
// the insert.
func (m *Manager) CreateSubCourse(actor models.User, courseID uint, attrs SubCourseAttrs) (*courseModels.SubCourse, error) {
	var created courseModels.SubCourse
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		c, err := loadCourse(tx, courseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionCreate, c); err != nil {
			return err
		}

		scope := subCourseScope(courseID)
		n, err := scope.count(tx)
		if err != nil {
			return err
		}

		orderIndex := n
		if attrs.OrderIndex != nil {
			if *attrs.OrderIndex < 0 || *attrs.OrderIndex > n {
				return apperr.New(apperr.KindValidation, "Order index out of range!")
			}
			orderIndex = *attrs.OrderIndex
			if err := scope.shiftFrom(tx, orderIndex); err != nil {
				return err
			}
		}

		created = courseModels.SubCourse{
			CourseID:    courseID,
			Title:       attrs.Title,
			Description: attrs.Description,
			OrderIndex:  orderIndex,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSubCourse updates sub-course attributes. Position changes go through
// ReorderSubCourses, never through here.
func (m *Manager) UpdateSubCourse(actor models.User, subCourseID uint, attrs SubCourseAttrs) (*courseModels.SubCourse, error) {
	var updated *courseModels.SubCourse
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		sc, err := loadSubCourse(tx, subCourseID)
		if err != nil {
			return err
		}
		c, err := loadCourse(tx, sc.CourseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionUpdate, c); err != nil {
			return err
		}

		if attrs.Title != "" {
			sc.Title = attrs.Title
		}
		if attrs.Description != "" {
			sc.Description = attrs.Description
		}

		updated = sc
		return tx.Save(sc).Error
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReorderSubCourses replaces the order of a course's sub-courses with the
// given sequence. The sequence must be exactly the current live child-id set
// of the course; anything missing, duplicated or foreign rejects the whole
// call with no stored change.
func (m *Manager) ReorderSubCourses(actor models.User, courseID uint, orderedIDs []uint) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		c, err := loadCourse(tx, courseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionReorder, c); err != nil {
			return err
		}

		scope := subCourseScope(courseID)
		current, err := scope.liveChildIDs(tx)
		if err != nil {
			return err
		}
		if err := validatePermutation(current, orderedIDs); err != nil {
			return err
		}

		return scope.renumber(tx, orderedIDs)
	})
}

// DeleteSubCourse soft deletes a sub-course and its units, then recompacts
// the course's remaining sub-courses so their order stays gapless.
func (m *Manager) DeleteSubCourse(actor models.User, subCourseID uint) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		sc, err := loadSubCourse(tx, subCourseID)
		if err != nil {
			return err
		}
		c, err := loadCourse(tx, sc.CourseID)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionDelete, c); err != nil {
			return err
		}

		if err := tx.Model(&courseModels.Unit{}).
			Where("sub_course_id = ?", subCourseID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		sc.IsDeleted = true
		if err := tx.Save(sc).Error; err != nil {
			return err
		}

		return subCourseScope(sc.CourseID).compact(tx)
	})
}

// MoveSubCourse reparents a sub-course onto another course inside the same
// organization. The moved node appends at the end of the target and the
// source course recompacts. The tenancy boundary is never crossed: a target
// in another organization rejects the move.
func (m *Manager) MoveSubCourse(actor models.User, subCourseID, newCourseID uint) (*courseModels.SubCourse, error) {
	var moved *courseModels.SubCourse
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		sc, err := loadSubCourse(tx, subCourseID)
		if err != nil {
			return err
		}
		src, err := loadCourse(tx, sc.CourseID)
		if err != nil {
			return err
		}
		dst, err := loadCourse(tx, newCourseID)
		if err != nil {
			return err
		}

		// The actor needs mutation rights on both the source and the target
		// parent scope before anything about the target is revealed.
		if err := authorizeCourseScope(tx, actor, authz.ActionMove, src); err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionMove, dst); err != nil {
			return err
		}

		if src.OrganizationID != dst.OrganizationID {
			return apperr.New(apperr.KindCrossTenantMove, "Cannot move a sub-course to another organization!")
		}

		moved = sc
		if src.ID == dst.ID {
			return nil
		}

		n, err := subCourseScope(newCourseID).count(tx)
		if err != nil {
			return err
		}

		oldCourseID := sc.CourseID
		sc.CourseID = newCourseID
		sc.OrderIndex = n
		if err := tx.Save(sc).Error; err != nil {
			return err
		}

		return subCourseScope(oldCourseID).compact(tx)
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// validatePermutation checks that proposed is exactly the current id set.
func validatePermutation(current, proposed []uint) error {
	if len(proposed) != len(current) {
		return apperr.New(apperr.KindInvalidReorder, "Reorder must list every child exactly once!")
	}
	currentSet := make(map[uint]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	seen := make(map[uint]bool, len(proposed))
	for _, id := range proposed {
		if !currentSet[id] {
			return apperr.New(apperr.KindInvalidReorder, "Reorder contains an unknown child id!")
		}
		if seen[id] {
			return apperr.New(apperr.KindInvalidReorder, "Reorder contains a duplicate child id!")
		}
		seen[id] = true
	}
	return nil
}
