package enrollment

import (
	"sync"
	"testing"

	"lms-educate/apperr"
	"lms-educate/models"
	courseModels "lms-educate/models/course"
	"lms-educate/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCourse(t *testing.T, db *gorm.DB, published bool) courseModels.Course {
	t.Helper()

	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)
	return testutil.NewCourse(t, db, org, nil, published)
}

func TestEnrollRequiresPublishedCourse(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)

	course := setupCourse(t, db, false)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	_, err := lc.Enroll(learner, course.ID)
	assert.Equal(t, apperr.KindCourseNotAvailable, apperr.KindOf(err))

	require.NoError(t, db.Model(&course).Update("is_published", true).Error)

	e, err := lc.Enroll(learner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Progress)
	assert.False(t, e.EnrolledAt.IsZero())

	_, err = lc.Enroll(learner, course.ID)
	assert.Equal(t, apperr.KindAlreadyEnrolled, apperr.KindOf(err))
}

func TestEnrollSubjectChecks(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)
	course := setupCourse(t, db, true)

	inactive := testutil.NewUser(t, db, models.RoleLearner, false)
	_, err := lc.Enroll(inactive, course.ID)
	assert.Equal(t, apperr.KindSubjectInactive, apperr.KindOf(err))

	instructor := testutil.NewUser(t, db, models.RoleInstructor, true)
	_, err = lc.Enroll(instructor, course.ID)
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestEnrollMissingCourse(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)

	learner := testutil.NewUser(t, db, models.RoleLearner, true)
	_, err := lc.Enroll(learner, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUnenrollAndReEnroll(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)
	course := setupCourse(t, db, true)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	err := lc.Unenroll(learner, course.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = lc.Enroll(learner, course.ID)
	require.NoError(t, err)
	_, err = lc.UpdateProgress(learner, course.ID, 60)
	require.NoError(t, err)

	require.NoError(t, lc.Unenroll(learner, course.ID))

	// Re-enrolling starts a fresh pair: progress is back at zero.
	e, err := lc.Enroll(learner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Progress)
}

func TestUpdateProgressIsMonotonic(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)
	course := setupCourse(t, db, true)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	_, err := lc.Enroll(learner, course.ID)
	require.NoError(t, err)

	e, err := lc.UpdateProgress(learner, course.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, e.Progress)

	// Repeating the same value is allowed.
	e, err = lc.UpdateProgress(learner, course.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, e.Progress)

	_, err = lc.UpdateProgress(learner, course.ID, 25)
	assert.Equal(t, apperr.KindProgressRegression, apperr.KindOf(err))

	e, err = lc.UpdateProgress(learner, course.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
}

func TestUpdateProgressValidation(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)
	course := setupCourse(t, db, true)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	for _, v := range []int{-1, 101} {
		_, err := lc.UpdateProgress(learner, course.ID, v)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "value %d", v)
	}

	// Range check first, then the existence check.
	_, err := lc.UpdateProgress(learner, course.ID, 50)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConcurrentEnrollProducesOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)
	course := setupCourse(t, db, true)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lc.Enroll(learner, course.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.Equal(t, apperr.KindAlreadyEnrolled, apperr.KindOf(err))
	}
	assert.Equal(t, 1, successes)

	var rows int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", learner.ID, course.ID, false).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestListForLearner(t *testing.T) {
	db := testutil.NewDB(t)
	lc := NewLifecycle(db)

	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)
	learner := testutil.NewUser(t, db, models.RoleLearner, true)

	for i := 0; i < 3; i++ {
		course := testutil.NewCourse(t, db, org, nil, true)
		_, err := lc.Enroll(learner, course.ID)
		require.NoError(t, err)
	}

	enrollments, total, err := lc.ListForLearner(learner, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, enrollments, 2)
	assert.NotZero(t, enrollments[0].Course.ID)

	enrollments, _, err = lc.ListForLearner(learner, 2, 2)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}
