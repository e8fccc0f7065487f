package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/waste3d/coursehub/internal/domain"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var s domain.Student
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetProfile - студент вместе с курсами и пройденными уроками
func (r *StudentRepository) GetProfile(ctx context.Context, email string) (*domain.Student, error) {
	var s domain.Student
	err := r.db.WithContext(ctx).
		Preload("EnrolledCourses", func(db *gorm.DB) *gorm.DB {
			return db.Order("courses.id asc")
		}).
		Preload("CompletedLessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.id asc")
		}).
		Where("email = ?", email).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) error {
	err := r.db.WithContext(ctx).Omit("EnrolledCourses", "CompletedLessons").Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrStudentExists
	}
	return err
}

func (r *StudentRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&domain.Student{}).
		Where("id = ?", id).
		Update("name", name).Error
}

// GetOrCreateByEmail не трогает имя существующего студента
func (r *StudentRepository) GetOrCreateByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var s domain.Student
	err := r.db.WithContext(ctx).
		Where(domain.Student{Email: email}).
		FirstOrCreate(&s).Error
	return &s, err
}

// EnrolledCourseIDs возвращает пересечение курсов студента с courseIDs
func (r *StudentRepository) EnrolledCourseIDs(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("student_enrolled_courses").
		Where("student_id = ? AND course_id IN ?", studentID, courseIDs).
		Pluck("course_id", &ids).Error
	return ids, err
}

// AddEnrollments добавляет все курсы одной транзакцией.
// s не меняется: Append оставил бы в s.EnrolledCourses только новые курсы
func (r *StudentRepository) AddEnrollments(ctx context.Context, s *domain.Student, courses []domain.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&domain.Student{ID: s.ID}).Omit("EnrolledCourses.*").Association("EnrolledCourses").Append(courses)
	})
}

func (r *StudentRepository) AddCompletedLesson(ctx context.Context, s *domain.Student, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Model(&domain.Student{ID: s.ID}).Omit("CompletedLessons.*").Association("CompletedLessons").Append(lesson)
}

func (r *StudentRepository) ListByCourse(ctx context.Context, courseID uint) ([]domain.Student, error) {
	var students []domain.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN student_enrolled_courses sec ON sec.student_id = students.id").
		Where("sec.course_id = ?", courseID).
		Order("students.id asc").
		Find(&students).Error
	return students, err
}
