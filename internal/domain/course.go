package domain

import "time"

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"index;not null;size:200" json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`

	// Связь один-ко-многим: у курса много уроков
	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompletionStatus - статичный флаг урока, задается редактором.
// Прогресс конкретного студента хранится в Student.CompletedLessons
type Lesson struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	CourseID         uint    `gorm:"index;not null" json:"course_id"`
	Title            string  `gorm:"not null;size:200" json:"title"`
	Content          string  `json:"content"`
	CompletionStatus bool    `gorm:"default:false" json:"completion_status"`
	VideoURL         *string `json:"video_url"`

	CreatedAt time.Time `json:"created_at"`
}
