package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a learner's membership in a course with progress 0-100.
// At most one live row may exist per (user_id, course_id); the partial unique
// index created in database.Migrate is the enforcement point for concurrent
// enroll calls.
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Progress   int       `json:"progress" gorm:"default:0"` // completion percentage, never decreases
	EnrolledAt time.Time `json:"enrolled_at"`
	IsDeleted  bool      `gorm:"default:false"`
	Course     Course    `json:"course" gorm:"foreignKey:CourseID"`
}
