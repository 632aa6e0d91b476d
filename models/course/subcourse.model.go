package course

import "gorm.io/gorm"

// SubCourse is an ordered section of a course. Live rows of one course keep
// order_index values forming an unbroken 0..n-1 sequence.
type SubCourse struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"not null;default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}
