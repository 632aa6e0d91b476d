package hierarchy

import (
	"lms-educate/apperr"
	"lms-educate/authz"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UnitAttrs carries the writable unit fields. Kind is fixed at creation.
type UnitAttrs struct {
	Kind        string
	Title       string
	TextContent string
	VideoURL    string
	QuizOptions datatypes.JSON
	OrderIndex  *int
}

// courseOfSubCourse walks one step up the ancestor chain.
func courseOfSubCourse(tx *gorm.DB, sc *courseModels.SubCourse) (*courseModels.Course, error) {
	return loadCourse(tx, sc.CourseID)
}

// CreateUnit adds a lesson or quiz to a sub-course, with the same ordering
// rules as sub-course creation.
func (m *Manager) CreateUnit(actor models.User, subCourseID uint, attrs UnitAttrs) (*courseModels.Unit, error) {
	if attrs.Kind != courseModels.UnitLesson && attrs.Kind != courseModels.UnitQuiz {
		return nil, apperr.New(apperr.KindValidation, "Unit kind must be LESSON or QUIZ!")
	}

	var created courseModels.Unit
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		sc, err := loadSubCourse(tx, subCourseID)
		if err != nil {
			return err
		}
		c, err := courseOfSubCourse(tx, sc)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionCreate, c); err != nil {
			return err
		}

		scope := unitScope(subCourseID)
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

		created = courseModels.Unit{
			SubCourseID: subCourseID,
			Kind:        attrs.Kind,
			Title:       attrs.Title,
			TextContent: attrs.TextContent,
			VideoURL:    attrs.VideoURL,
			QuizOptions: attrs.QuizOptions,
			OrderIndex:  orderIndex,
			IsPublished: false,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUnit updates unit content and the published flag. Kind and position
// never change here.
func (m *Manager) UpdateUnit(actor models.User, unitID uint, attrs UnitAttrs, published *bool) (*courseModels.Unit, error) {
	var updated *courseModels.Unit
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		u, err := loadUnit(tx, unitID)
		if err != nil {
			return err
		}
		sc, err := loadSubCourse(tx, u.SubCourseID)
		if err != nil {
			return err
		}
		c, err := courseOfSubCourse(tx, sc)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionUpdate, c); err != nil {
			return err
		}

		if attrs.Title != "" {
			u.Title = attrs.Title
		}
		if attrs.TextContent != "" {
			u.TextContent = attrs.TextContent
		}
		if attrs.VideoURL != "" {
			u.VideoURL = attrs.VideoURL
		}
		if len(attrs.QuizOptions) > 0 {
			if u.Kind != courseModels.UnitQuiz {
				return apperr.New(apperr.KindValidation, "Quiz options are only valid on QUIZ units!")
			}
			u.QuizOptions = attrs.QuizOptions
		}
		if published != nil {
			u.IsPublished = *published
		}

		updated = u
		return tx.Save(u).Error
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReorderUnits replaces the order of a sub-course's units, under the same
// exact-permutation rule as sub-course reordering.
func (m *Manager) ReorderUnits(actor models.User, subCourseID uint, orderedIDs []uint) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		sc, err := loadSubCourse(tx, subCourseID)
		if err != nil {
			return err
		}
		c, err := courseOfSubCourse(tx, sc)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionReorder, c); err != nil {
			return err
		}

		scope := unitScope(subCourseID)
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

// DeleteUnit soft deletes a unit and recompacts its siblings.
func (m *Manager) DeleteUnit(actor models.User, unitID uint) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		u, err := loadUnit(tx, unitID)
		if err != nil {
			return err
		}
		sc, err := loadSubCourse(tx, u.SubCourseID)
		if err != nil {
			return err
		}
		c, err := courseOfSubCourse(tx, sc)
		if err != nil {
			return err
		}
		if err := authorizeCourseScope(tx, actor, authz.ActionDelete, c); err != nil {
			return err
		}

		u.IsDeleted = true
		if err := tx.Save(u).Error; err != nil {
			return err
		}

		return unitScope(u.SubCourseID).compact(tx)
	})
}
