package models

import "gorm.io/gorm"

// Organization is the tenancy boundary. Every course belongs to exactly one
// organization and no resource ever references a second one transitively.
type Organization struct {
	gorm.Model
	PublicID  string `json:"public_id" gorm:"uniqueIndex;not null"`
	Name      string `json:"name" gorm:"not null"`
	PlanTier  string `json:"plan_tier" gorm:"default:'FREE'"` // FREE, TEAM, ENTERPRISE
	Status    string `json:"status" gorm:"default:'ACTIVE'"`  // ACTIVE, SUSPENDED
	IsDeleted bool   `gorm:"default:false"`
}
