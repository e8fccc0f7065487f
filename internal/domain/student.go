package domain

// Студент ищется по email. Создается при первой записи на курс, не удаляется
type Student struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Name  string `gorm:"size:100" json:"name"`

	EnrolledCourses  []Course `gorm:"many2many:student_enrolled_courses;" json:"enrolled_courses,omitempty"`
	CompletedLessons []Lesson `gorm:"many2many:student_completed_lessons;" json:"completed_lessons,omitempty"`
}

// IsEnrolled проверяет только загруженные EnrolledCourses
func (s *Student) IsEnrolled(courseID uint) bool {
	for _, c := range s.EnrolledCourses {
		if c.ID == courseID {
			return true
		}
	}
	return false
}
