package authz

import (
	"testing"

	"lms-educate/apperr"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"github.com/stretchr/testify/assert"
)

func activeUser(id uint, role string) models.User {
	u := models.User{Role: role, IsActive: true}
	u.ID = id
	return u
}

func memberFacts(orgID uint, c *courseModels.Course) Facts {
	return Facts{
		OrganizationID: orgID,
		Membership:     &models.Membership{UserID: 1, OrganizationID: orgID},
		Course:         c,
	}
}

func TestDecideInactiveSubjectBeatsEveryRule(t *testing.T) {
	course := &courseModels.Course{OrganizationID: 7, IsPublished: true}

	for _, role := range []string{models.RoleOwner, models.RoleInstructor, models.RoleLearner} {
		subject := activeUser(1, role)
		subject.IsActive = false

		err := Decide(subject, ActionRead, memberFacts(7, course))
		assert.Equal(t, apperr.KindSubjectInactive, apperr.KindOf(err), "role %s", role)
	}
}

func TestDecideOwnerSupremacyWithinOrganization(t *testing.T) {
	course := &courseModels.Course{OrganizationID: 7}
	owner := activeUser(1, models.RoleOwner)

	for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionReorder, ActionMove} {
		assert.NoError(t, Decide(owner, action, memberFacts(7, course)), "action %s", action)
	}

	// An owner without a membership in the resource's org gets nothing.
	err := Decide(owner, ActionDelete, Facts{OrganizationID: 7, Course: course})
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestDecideInstructorReadRequiresMembership(t *testing.T) {
	course := &courseModels.Course{OrganizationID: 7}
	instructor := activeUser(2, models.RoleInstructor)

	assert.NoError(t, Decide(instructor, ActionRead, memberFacts(7, course)))

	err := Decide(instructor, ActionRead, Facts{OrganizationID: 7, Course: course})
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestDecideInstructorMutatesOnlyOwnedCourses(t *testing.T) {
	instructor := activeUser(2, models.RoleInstructor)

	ownerID := uint(2)
	owned := &courseModels.Course{OrganizationID: 7, OwnerID: &ownerID}
	otherID := uint(9)
	foreign := &courseModels.Course{OrganizationID: 7, OwnerID: &otherID}
	orphan := &courseModels.Course{OrganizationID: 7}

	assert.NoError(t, Decide(instructor, ActionUpdate, memberFacts(7, owned)))
	assert.NoError(t, Decide(instructor, ActionReorder, memberFacts(7, owned)))

	err := Decide(instructor, ActionUpdate, memberFacts(7, foreign))
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))

	err = Decide(instructor, ActionDelete, memberFacts(7, orphan))
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

func TestDecideLearnerSeesOnlyPublishedCourses(t *testing.T) {
	learner := activeUser(3, models.RoleLearner)

	published := &courseModels.Course{OrganizationID: 7, IsPublished: true}
	draft := &courseModels.Course{OrganizationID: 7}

	assert.NoError(t, Decide(learner, ActionRead, Facts{OrganizationID: 7, Course: published}))

	err := Decide(learner, ActionRead, Facts{OrganizationID: 7, Course: draft})
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))

	// Learners never mutate the tree, published or not.
	err = Decide(learner, ActionUpdate, Facts{OrganizationID: 7, Course: published})
	assert.Equal(t, apperr.KindRoleForbidden, apperr.KindOf(err))
}

// Every (role, action) pair must reach a terminal rule: either nil or a
// specific denial kind, never a zero decision.
func TestDecideIsTotal(t *testing.T) {
	roles := []string{models.RoleOwner, models.RoleInstructor, models.RoleLearner, "UNKNOWN"}
	actions := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionReorder, ActionMove}
	factsVariants := []Facts{
		{},
		{OrganizationID: 7},
		memberFacts(7, nil),
		memberFacts(7, &courseModels.Course{OrganizationID: 7, IsPublished: true}),
	}

	for _, role := range roles {
		for _, action := range actions {
			for i, facts := range factsVariants {
				err := Decide(activeUser(1, role), action, facts)
				if err != nil {
					assert.NotEmpty(t, apperr.KindOf(err), "role %s action %s facts %d", role, action, i)
				}
			}
		}
	}
}
