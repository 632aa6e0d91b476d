package hierarchy

import (
	"testing"

	"lms-educate/apperr"
	"lms-educate/models"
	courseModels "lms-educate/models/course"
	"lms-educate/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	mgr    *Manager
	owner  models.User
	org    models.Organization
	course courseModels.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	owner := testutil.NewUser(t, db, models.RoleOwner, true)
	org := testutil.NewOrg(t, db, "Acme School")
	testutil.NewMembership(t, db, owner, org, models.RoleOwner)
	course := testutil.NewCourse(t, db, org, nil, false)

	return &fixture{db: db, mgr: NewManager(db), owner: owner, org: org, course: course}
}

// subCourseOrder returns (id, order_index) pairs of a course's live
// sub-courses in stored order.
func subCourseOrder(t *testing.T, db *gorm.DB, courseID uint) ([]uint, []int) {
	t.Helper()

	var rows []courseModels.SubCourse
	err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&rows).Error
	require.NoError(t, err)

	ids := make([]uint, len(rows))
	orders := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		orders[i] = r.OrderIndex
	}
	return ids, orders
}

func unitOrder(t *testing.T, db *gorm.DB, subCourseID uint) ([]uint, []int) {
	t.Helper()

	var rows []courseModels.Unit
	err := db.Where("sub_course_id = ? AND is_deleted = ?", subCourseID, false).
		Order("order_index asc").Find(&rows).Error
	require.NoError(t, err)

	ids := make([]uint, len(rows))
	orders := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		orders[i] = r.OrderIndex
	}
	return ids, orders
}

func TestCreateSubCourseAppends(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := f.mgr.CreateSubCourse(f.owner, f.course.ID, SubCourseAttrs{Title: title})
		require.NoError(t, err)
	}

	_, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func TestCreateSubCourseAtPositionShiftsSiblings(t *testing.T) {
	f := newFixture(t)

	a := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	b := testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)
	c := testutil.NewSubCourse(t, f.db, f.course.ID, "C", 2)

	pos := 1
	inserted, err := f.mgr.CreateSubCourse(f.owner, f.course.ID, SubCourseAttrs{Title: "X", OrderIndex: &pos})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted.OrderIndex)

	ids, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []uint{a.ID, inserted.ID, b.ID, c.ID}, ids)
	assert.Equal(t, []int{0, 1, 2, 3}, orders)
}

func TestCreateSubCourseRejectsOutOfRangePosition(t *testing.T) {
	f := newFixture(t)
	testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)

	for _, pos := range []int{-1, 2, 10} {
		p := pos
		_, err := f.mgr.CreateSubCourse(f.owner, f.course.ID, SubCourseAttrs{Title: "X", OrderIndex: &p})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "position %d", pos)
	}
}

func TestCreateSubCourseMissingCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.CreateSubCourse(f.owner, 9999, SubCourseAttrs{Title: "X"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReorderSubCourses(t *testing.T) {
	f := newFixture(t)

	a := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	b := testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)
	d := testutil.NewSubCourse(t, f.db, f.course.ID, "D", 2)

	require.NoError(t, f.mgr.ReorderSubCourses(f.owner, f.course.ID, []uint{d.ID, a.ID, b.ID}))

	ids, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []uint{d.ID, a.ID, b.ID}, ids)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func TestReorderSubCoursesRejectsBadPermutations(t *testing.T) {
	f := newFixture(t)

	a := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	b := testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)
	c := testutil.NewSubCourse(t, f.db, f.course.ID, "C", 2)

	cases := map[string][]uint{
		"missing child":   {a.ID, b.ID},
		"duplicate child": {a.ID, a.ID, b.ID},
		"foreign id":      {a.ID, b.ID, 9999},
		"extra id":        {a.ID, b.ID, c.ID, 9999},
	}
	for name, seq := range cases {
		err := f.mgr.ReorderSubCourses(f.owner, f.course.ID, seq)
		assert.Equal(t, apperr.KindInvalidReorder, apperr.KindOf(err), name)
	}

	// A rejected reorder stores nothing.
	ids, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, ids)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func TestDeleteSubCourseRecompactsAndCascades(t *testing.T) {
	f := newFixture(t)

	a := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	b := testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)
	c := testutil.NewSubCourse(t, f.db, f.course.ID, "C", 2)
	u := testutil.NewUnit(t, f.db, b.ID, "Lesson 1", 0)

	require.NoError(t, f.mgr.DeleteSubCourse(f.owner, b.ID))

	ids, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []uint{a.ID, c.ID}, ids)
	assert.Equal(t, []int{0, 1}, orders)

	var gone courseModels.Unit
	require.NoError(t, f.db.First(&gone, u.ID).Error)
	assert.True(t, gone.IsDeleted)

	err := f.mgr.DeleteSubCourse(f.owner, b.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteSubCourseForbiddenForNonOwningInstructor(t *testing.T) {
	f := newFixture(t)

	instructor := testutil.NewUser(t, f.db, models.RoleInstructor, true)
	testutil.NewMembership(t, f.db, instructor, f.org, models.RoleInstructor)

	sc := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)

	// The course has no owner of record, so the instructor cannot mutate it.
	err := f.mgr.DeleteSubCourse(instructor, sc.ID)
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))

	// The organization owner can, and the remaining sibling recompacts to 0.
	require.NoError(t, f.mgr.DeleteSubCourse(f.owner, sc.ID))
	_, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []int{0}, orders)
}

func TestInstructorMutatesOwnCourse(t *testing.T) {
	f := newFixture(t)

	instructor := testutil.NewUser(t, f.db, models.RoleInstructor, true)
	testutil.NewMembership(t, f.db, instructor, f.org, models.RoleInstructor)

	owned := testutil.NewCourse(t, f.db, f.org, &instructor.ID, false)

	_, err := f.mgr.CreateSubCourse(instructor, owned.ID, SubCourseAttrs{Title: "Week 1"})
	require.NoError(t, err)

	_, err = f.mgr.CreateSubCourse(instructor, f.course.ID, SubCourseAttrs{Title: "Week 1"})
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestMoveSubCourseWithinOrganization(t *testing.T) {
	f := newFixture(t)

	src := f.course
	dst := testutil.NewCourse(t, f.db, f.org, nil, false)

	a := testutil.NewSubCourse(t, f.db, src.ID, "A", 0)
	b := testutil.NewSubCourse(t, f.db, src.ID, "B", 1)
	c := testutil.NewSubCourse(t, f.db, src.ID, "C", 2)
	existing := testutil.NewSubCourse(t, f.db, dst.ID, "X", 0)

	moved, err := f.mgr.MoveSubCourse(f.owner, b.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, dst.ID, moved.CourseID)
	assert.Equal(t, 1, moved.OrderIndex)

	ids, orders := subCourseOrder(t, f.db, src.ID)
	assert.Equal(t, []uint{a.ID, c.ID}, ids)
	assert.Equal(t, []int{0, 1}, orders)

	ids, orders = subCourseOrder(t, f.db, dst.ID)
	assert.Equal(t, []uint{existing.ID, b.ID}, ids)
	assert.Equal(t, []int{0, 1}, orders)
}

func TestMoveSubCourseSameCourseIsNoOp(t *testing.T) {
	f := newFixture(t)

	a := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	testutil.NewSubCourse(t, f.db, f.course.ID, "B", 1)

	moved, err := f.mgr.MoveSubCourse(f.owner, a.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.OrderIndex)

	_, orders := subCourseOrder(t, f.db, f.course.ID)
	assert.Equal(t, []int{0, 1}, orders)
}

func TestMoveSubCourseRejectsCrossTenantTarget(t *testing.T) {
	f := newFixture(t)

	otherOrg := testutil.NewOrg(t, f.db, "Rival School")
	testutil.NewMembership(t, f.db, f.owner, otherOrg, models.RoleOwner)
	foreign := testutil.NewCourse(t, f.db, otherOrg, nil, false)

	sc := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)

	// Even an actor who owns both organizations cannot cross the boundary.
	_, err := f.mgr.MoveSubCourse(f.owner, sc.ID, foreign.ID)
	assert.Equal(t, apperr.KindCrossTenantMove, apperr.KindOf(err))

	var unchanged courseModels.SubCourse
	require.NoError(t, f.db.First(&unchanged, sc.ID).Error)
	assert.Equal(t, f.course.ID, unchanged.CourseID)
}

// An actor with no rights on either course is denied before the tenancy
// comparison runs, so the denial never reveals whether the target crosses
// the organization boundary.
func TestMoveSubCourseDeniesUnauthorizedActorFirst(t *testing.T) {
	f := newFixture(t)

	otherOrg := testutil.NewOrg(t, f.db, "Rival School")
	foreignOwner := testutil.NewUser(t, f.db, models.RoleOwner, true)
	testutil.NewMembership(t, f.db, foreignOwner, otherOrg, models.RoleOwner)
	foreign := testutil.NewCourse(t, f.db, otherOrg, nil, false)

	sc := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)

	outsider := testutil.NewUser(t, f.db, models.RoleInstructor, true)

	_, err := f.mgr.MoveSubCourse(outsider, sc.ID, foreign.ID)
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestCreateCourseValidatesOwnerOfRecord(t *testing.T) {
	f := newFixture(t)

	outsider := testutil.NewUser(t, f.db, models.RoleInstructor, true)

	_, err := f.mgr.CreateCourse(f.owner, f.org.ID, CourseAttrs{Title: "Go 101", OwnerID: &outsider.ID})
	assert.Equal(t, apperr.KindInvariantViolation, apperr.KindOf(err))

	testutil.NewMembership(t, f.db, outsider, f.org, models.RoleInstructor)

	c, err := f.mgr.CreateCourse(f.owner, f.org.ID, CourseAttrs{Title: "Go 101", OwnerID: &outsider.ID})
	require.NoError(t, err)
	assert.False(t, c.IsPublished)
	require.NotNil(t, c.OwnerID)
	assert.Equal(t, outsider.ID, *c.OwnerID)
}

func TestDeleteCourseRefusesWithLiveEnrollments(t *testing.T) {
	f := newFixture(t)

	learner := testutil.NewUser(t, f.db, models.RoleLearner, true)
	e := courseModels.Enrollment{UserID: learner.ID, CourseID: f.course.ID}
	require.NoError(t, f.db.Create(&e).Error)

	err := f.mgr.DeleteCourse(f.owner, f.course.ID)
	assert.Equal(t, apperr.KindHasDependents, apperr.KindOf(err))

	// Resolving the enrollment unblocks the delete, tree and all.
	e.IsDeleted = true
	require.NoError(t, f.db.Save(&e).Error)

	sc := testutil.NewSubCourse(t, f.db, f.course.ID, "A", 0)
	u := testutil.NewUnit(t, f.db, sc.ID, "Lesson 1", 0)

	require.NoError(t, f.mgr.DeleteCourse(f.owner, f.course.ID))

	var course courseModels.Course
	require.NoError(t, f.db.First(&course, f.course.ID).Error)
	assert.True(t, course.IsDeleted)

	var sub courseModels.SubCourse
	require.NoError(t, f.db.First(&sub, sc.ID).Error)
	assert.True(t, sub.IsDeleted)

	var unit courseModels.Unit
	require.NoError(t, f.db.First(&unit, u.ID).Error)
	assert.True(t, unit.IsDeleted)
}

func TestUnitLifecycle(t *testing.T) {
	f := newFixture(t)
	sc := testutil.NewSubCourse(t, f.db, f.course.ID, "Week 1", 0)

	lesson, err := f.mgr.CreateUnit(f.owner, sc.ID, UnitAttrs{
		Kind: courseModels.UnitLesson, Title: "Intro", TextContent: "Welcome.",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, lesson.OrderIndex)

	quiz, err := f.mgr.CreateUnit(f.owner, sc.ID, UnitAttrs{
		Kind: courseModels.UnitQuiz, Title: "Checkpoint",
		QuizOptions: []byte(`[{"text":"yes","correct":true},{"text":"no","correct":false}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, quiz.OrderIndex)

	_, err = f.mgr.CreateUnit(f.owner, sc.ID, UnitAttrs{Kind: "WORKSHEET", Title: "Nope"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Quiz options never attach to a lesson.
	_, err = f.mgr.UpdateUnit(f.owner, lesson.ID, UnitAttrs{
		QuizOptions: []byte(`[{"text":"yes","correct":true}]`),
	}, nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, f.mgr.ReorderUnits(f.owner, sc.ID, []uint{quiz.ID, lesson.ID}))
	ids, orders := unitOrder(t, f.db, sc.ID)
	assert.Equal(t, []uint{quiz.ID, lesson.ID}, ids)
	assert.Equal(t, []int{0, 1}, orders)

	require.NoError(t, f.mgr.DeleteUnit(f.owner, quiz.ID))
	ids, orders = unitOrder(t, f.db, sc.ID)
	assert.Equal(t, []uint{lesson.ID}, ids)
	assert.Equal(t, []int{0}, orders)
}
