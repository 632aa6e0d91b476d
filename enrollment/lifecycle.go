package enrollment

import (
	"errors"
	"time"

	"lms-educate/apperr"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/gorm"
)

// Lifecycle is the state machine for the (learner, course) relation. A pair
// is either Unenrolled (no live row) or Enrolled (one live row with progress
// 0-100). Completion is just progress == 100; there is no separate state.
type Lifecycle struct {
	DB *gorm.DB
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{DB: db}
}

// Enroll creates the enrollment for a learner in a published course. The
// existence check and the insert run in one transaction, and the partial
// unique index on (user_id, course_id) backs them up: when two enrolls race,
// the loser's insert fails and is reported as ALREADY_ENROLLED, never as a
// second success.
func (l *Lifecycle) Enroll(learner models.User, courseID uint) (*courseModels.Enrollment, error) {
	if !learner.IsActive || learner.IsDeleted {
		return nil, apperr.New(apperr.KindSubjectInactive, "Subject is inactive!")
	}
	if learner.Role != models.RoleLearner {
		return nil, apperr.New(apperr.KindRoleForbidden, "Only learners can enroll in courses!")
	}

	var created courseModels.Enrollment
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		var c courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Course not found!")
			}
			return err
		}
		if !c.IsPublished {
			return apperr.New(apperr.KindCourseNotAvailable, "Course is not open for enrollment!")
		}

		var existing courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
			learner.ID, courseID, false).First(&existing).Error
		if err == nil {
			return apperr.New(apperr.KindAlreadyEnrolled, "Already enrolled in this course!")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created = courseModels.Enrollment{
			UserID:     learner.ID,
			CourseID:   courseID,
			Progress:   0,
			EnrolledAt: time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.KindAlreadyEnrolled, "Already enrolled in this course!")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Unenroll deletes the enrollment for the exact pair. A missing pair is
// NOT_FOUND: callers are expected to check state first instead of relying on
// a silently idempotent delete.
func (l *Lifecycle) Unenroll(learner models.User, courseID uint) error {
	if !learner.IsActive || learner.IsDeleted {
		return apperr.New(apperr.KindSubjectInactive, "Subject is inactive!")
	}

	return l.DB.Transaction(func(tx *gorm.DB) error {
		var e courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
			learner.ID, courseID, false).First(&e).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Enrollment not found!")
			}
			return err
		}

		e.IsDeleted = true
		return tx.Save(&e).Error
	})
}

// UpdateProgress records a new progress value for the pair. Progress only
// moves forward: a lower value than the stored one means a stale client and
// is rejected rather than applied.
func (l *Lifecycle) UpdateProgress(learner models.User, courseID uint, newProgress int) (*courseModels.Enrollment, error) {
	if !learner.IsActive || learner.IsDeleted {
		return nil, apperr.New(apperr.KindSubjectInactive, "Subject is inactive!")
	}
	if newProgress < 0 || newProgress > 100 {
		return nil, apperr.New(apperr.KindValidation, "Progress must be between 0 and 100!")
	}

	var updated courseModels.Enrollment
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
			learner.ID, courseID, false).First(&updated).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Enrollment not found!")
			}
			return err
		}

		if newProgress < updated.Progress {
			return apperr.New(apperr.KindProgressRegression, "Progress cannot decrease!")
		}

		updated.Progress = newProgress
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListForLearner returns the learner's live enrollments newest first, with
// the owning course preloaded.
func (l *Lifecycle) ListForLearner(learner models.User, page, limit int) ([]courseModels.Enrollment, int64, error) {
	db := l.DB.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", learner.ID, false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []courseModels.Enrollment
	err := db.Preload("Course").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}
