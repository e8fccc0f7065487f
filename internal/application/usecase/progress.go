package usecase

import (
	"context"

	"github.com/waste3d/coursehub/internal/domain"
)

type LessonLookup interface {
	GetLesson(ctx context.Context, id uint) (*domain.Lesson, error)
}

type LessonCompleter interface {
	GetOrCreateByEmail(ctx context.Context, email string) (*domain.Student, error)
	AddCompletedLesson(ctx context.Context, s *domain.Student, lesson *domain.Lesson) error
}

type ProgressUseCase struct {
	lessons  LessonLookup
	students LessonCompleter
}

func NewProgressUseCase(ll LessonLookup, lc LessonCompleter) *ProgressUseCase {
	return &ProgressUseCase{lessons: ll, students: lc}
}

// CompleteLesson отмечает урок пройденным для студента с этим email.
// Сам Lesson.CompletionStatus не меняется
func (uc *ProgressUseCase) CompleteLesson(ctx context.Context, email string, lessonID uint) (*domain.Lesson, error) {
	lesson, err := uc.lessons.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	student, err := uc.students.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := uc.students.AddCompletedLesson(ctx, student, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
