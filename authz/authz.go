package authz

import (
	"lms-educate/apperr"
	"lms-educate/models"
	courseModels "lms-educate/models/course"
)

// Action is what the subject is attempting against a resource.
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionReorder Action = "reorder"
	ActionMove    Action = "move"
)

// Mutates reports whether the action changes state.
func (a Action) Mutates() bool {
	return a != ActionRead
}

// Facts are everything Decide needs about the target resource, loaded up
// front by the caller. Membership is the subject's live membership in the
// resource's organization (nil when the subject is not a member). Course is
// the owning course for course-scoped resources and nil for organization-level
// ones (member management).
type Facts struct {
	OrganizationID uint
	Membership     *models.Membership
	Course         *courseModels.Course
}

// Decide is the single authorization decision point: a fixed, ordered policy
// table evaluated first-match-wins. It returns nil to allow, or an apperr
// permission error to deny. It performs no I/O and has no side effects.
//
// Rule order guarantees owner supremacy within their organizations,
// instructor self-service limited to courses they own, and learner visibility
// limited to published content. Enroll/unenroll are not decided here; the
// enrollment lifecycle carries its own checks.
func Decide(subject models.User, action Action, facts Facts) error {
	// 1. Inactive subjects are cut off before any role rule.
	if !subject.IsActive || subject.IsDeleted {
		return apperr.New(apperr.KindSubjectInactive, "Subject is inactive!")
	}

	isMember := facts.Membership != nil

	// 2. Owners may do anything inside organizations they belong to.
	if subject.Role == models.RoleOwner && isMember {
		return nil
	}

	// 3. Instructors read anything inside their organizations.
	if subject.Role == models.RoleInstructor && action == ActionRead && isMember {
		return nil
	}

	// 4. Instructors mutate only courses where they are the owner of record.
	if subject.Role == models.RoleInstructor && action.Mutates() &&
		facts.Course != nil && facts.Course.OwnerID != nil && *facts.Course.OwnerID == subject.ID {
		return nil
	}

	// 5. Learners read published courses and their descendants.
	if subject.Role == models.RoleLearner && action == ActionRead &&
		facts.Course != nil && facts.Course.IsPublished {
		return nil
	}

	// 7. Catch-all: every (role, action) pair terminates here if nothing
	// above matched.
	return apperr.New(apperr.KindRoleForbidden, "You do not have permission for this action!")
}
