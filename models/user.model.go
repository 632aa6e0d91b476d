package models

import (
	"time"

	"gorm.io/gorm"
)

// Global subject roles, supplied by the identity provider and mirrored here.
const (
	RoleOwner      = "OWNER"
	RoleInstructor = "INSTRUCTOR"
	RoleLearner    = "LEARNER"
)

// User mirrors a subject from the identity provider. This service never
// creates or authenticates users; it only reads id, role and the active flag.
type User struct {
	gorm.Model
	Name      string    `gorm:"default:''"`
	Email     string    `gorm:"unique;not null"`
	Role      string    `gorm:"default:'LEARNER'"` // OWNER, INSTRUCTOR, LEARNER
	IsActive  bool      `gorm:"default:true"`
	LastSeen  time.Time `gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}
