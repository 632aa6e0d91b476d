package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit kinds
const (
	UnitLesson = "LESSON"
	UnitQuiz   = "QUIZ"
)

// Unit is a leaf content node (lesson or quiz) inside a sub-course, with the
// same order contiguity rule as sub-courses, scoped to sub_course_id.
type Unit struct {
	gorm.Model
	SubCourseID uint           `json:"sub_course_id" gorm:"index;not null"`
	Kind        string         `json:"kind" gorm:"not null;default:'LESSON'"` // LESSON, QUIZ
	Title       string         `json:"title"`
	TextContent string         `json:"text_content" gorm:"type:text"`
	VideoURL    string         `json:"video_url"`
	QuizOptions datatypes.JSON `json:"quiz_options"` // QUIZ only: [{"text": ..., "correct": ...}]
	OrderIndex  int            `json:"order_index" gorm:"not null;default:0"`
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}
