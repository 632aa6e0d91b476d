package authz

import (
	"errors"

	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"gorm.io/gorm"
)

// LoadFacts fetches the membership fact for a subject against the resource's
// organization. course may be nil for organization-level resources. Walking
// the ancestor chain is the caller's job; by the time facts are loaded the
// organization id is already resolved.
func LoadFacts(db *gorm.DB, subjectID uint, organizationID uint, course *courseModels.Course) (Facts, error) {
	facts := Facts{OrganizationID: organizationID, Course: course}

	var membership models.Membership
	err := db.Where("user_id = ? AND organization_id = ? AND is_deleted = ?",
		subjectID, organizationID, false).First(&membership).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return facts, err
		}
		return facts, nil
	}

	facts.Membership = &membership
	return facts, nil
}

// Authorize loads facts and runs the policy table in one call. It is the
// entry point used by the hierarchy manager and the handlers.
func Authorize(db *gorm.DB, subject models.User, action Action, organizationID uint, course *courseModels.Course) error {
	facts, err := LoadFacts(db, subject.ID, organizationID, course)
	if err != nil {
		return err
	}
	return Decide(subject, action, facts)
}
