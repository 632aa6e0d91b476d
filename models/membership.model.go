package models

import "gorm.io/gorm"

// Membership links a user to one organization with a per-membership role.
// The (user_id, organization_id) pair is unique among live rows; the index
// is created in database.Migrate.
type Membership struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Role           string `json:"role" gorm:"not null"` // OWNER, INSTRUCTOR, LEARNER
	IsDeleted      bool   `gorm:"default:false"`
	User           User   `json:"-" gorm:"foreignKey:UserID"`
}
