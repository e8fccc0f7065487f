package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/waste3d/coursehub/internal/domain"
)

func (r *CourseRepository) GetLesson(ctx context.Context, id uint) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepository) LessonsByCourse(ctx context.Context, courseID uint) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id asc").
		Find(&lessons).Error
	return lessons, err
}

// CreateLesson проверяет, что курс существует
func (r *CourseRepository) CreateLesson(ctx context.Context, l *domain.Lesson) error {
	if _, err := r.GetByID(ctx, l.CourseID); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return err
	}
	r.invalidate(ctx, l.CourseID)
	return nil
}

func (r *CourseRepository) UpdateLesson(ctx context.Context, l *domain.Lesson) error {
	existing, err := r.GetLesson(ctx, l.ID)
	if err != nil {
		return err
	}
	if l.CourseID != existing.CourseID {
		if _, err := r.GetByID(ctx, l.CourseID); err != nil {
			return err
		}
	}

	err = r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"course_id":         l.CourseID,
			"title":             l.Title,
			"content":           l.Content,
			"completion_status": l.CompletionStatus,
			"video_url":         l.VideoURL,
		}).Error
	if err != nil {
		return err
	}
	r.invalidate(ctx, existing.CourseID, l.CourseID)
	return nil
}

func (r *CourseRepository) DeleteLesson(ctx context.Context, id uint) error {
	existing, err := r.GetLesson(ctx, id)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_completed_lessons WHERE lesson_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Lesson{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, existing.CourseID)
	return nil
}
