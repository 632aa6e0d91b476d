package course

import "gorm.io/gorm"

// Course is the root content node inside an organization. OrganizationID is
// immutable once set; OwnerID is the instructor of record and may be empty.
type Course struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	OwnerID        *uint  `json:"owner_id" gorm:"index"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	IsPublished    bool   `json:"is_published" gorm:"default:false"`
	IsDeleted      bool   `gorm:"default:false"`
}
