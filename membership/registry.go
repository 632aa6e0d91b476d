package membership

import (
	"errors"
	"time"

	"lms-educate/apperr"
	"lms-educate/authz"
	"lms-educate/models"

	"gorm.io/gorm"
)

// Registry owns the user-to-organization relation. Every operation is keyed
// by the (user, organization) pair; nothing here ever spans organizations.
type Registry struct {
	DB *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{DB: db}
}

// MembershipOf returns the live membership for the pair, or nil when absent.
func (r *Registry) MembershipOf(userID, organizationID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.DB.Where("user_id = ? AND organization_id = ? AND is_deleted = ?",
		userID, organizationID, false).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// IsMember reports whether the user has a live membership in the organization.
func (r *Registry) IsMember(userID, organizationID uint) (bool, error) {
	m, err := r.MembershipOf(userID, organizationID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// AddMember adds a user to an organization. The actor must already be an
// active Owner member of that organization. The very first Owner of an
// organization is established through BootstrapOwner at creation time, never
// through this path.
func (r *Registry) AddMember(actor models.User, organizationID, userID uint, role string) (*models.Membership, error) {
	if role != models.RoleOwner && role != models.RoleInstructor && role != models.RoleLearner {
		return nil, apperr.New(apperr.KindValidation, "Invalid membership role!")
	}

	var org models.Organization
	if err := r.DB.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
		return nil, apperr.New(apperr.KindNotFound, "Organization not found!")
	}

	if err := authz.Authorize(r.DB, actor, authz.ActionCreate, organizationID, nil); err != nil {
		return nil, err
	}

	var user models.User
	if err := r.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found!")
	}

	m := models.Membership{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
	}
	if err := r.DB.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindInvariantViolation, "User is already a member of this organization!")
		}
		return nil, err
	}
	return &m, nil
}

// RemoveMember deletes the membership for the exact pair. It fails when the
// membership is the organization's last Owner: an organization must always
// retain at least one Owner.
func (r *Registry) RemoveMember(actor models.User, organizationID, userID uint) error {
	var org models.Organization
	if err := r.DB.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
		return apperr.New(apperr.KindNotFound, "Organization not found!")
	}

	if err := authz.Authorize(r.DB, actor, authz.ActionDelete, organizationID, nil); err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		// Touch the organization row first. The row lock serializes
		// concurrent removals against the same organization, so the second
		// transaction re-reads the owner count after the first commits
		// instead of both passing the last-Owner check on a stale count.
		if err := tx.Model(&models.Organization{}).
			Where("id = ?", organizationID).
			UpdateColumn("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var m models.Membership
		err := tx.Where("user_id = ? AND organization_id = ? AND is_deleted = ?",
			userID, organizationID, false).First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Membership not found!")
			}
			return err
		}

		if m.Role == models.RoleOwner {
			var owners int64
			if err := tx.Model(&models.Membership{}).
				Where("organization_id = ? AND role = ? AND is_deleted = ?",
					organizationID, models.RoleOwner, false).
				Count(&owners).Error; err != nil {
				return err
			}
			if owners <= 1 {
				return apperr.New(apperr.KindInvariantViolation, "Cannot remove the last Owner of an organization!")
			}
		}

		m.IsDeleted = true
		return tx.Save(&m).Error
	})
}

// BootstrapOwner creates the founding Owner membership inside the
// organization-creation transaction. This is the privileged path that breaks
// the AddMember/Authorize circle for a brand-new organization.
func BootstrapOwner(tx *gorm.DB, organizationID, userID uint) (*models.Membership, error) {
	m := models.Membership{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           models.RoleOwner,
	}
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
