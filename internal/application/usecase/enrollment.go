package usecase

import (
	"context"
	"errors"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/logger"
)

type StudentStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	GetProfile(ctx context.Context, email string) (*domain.Student, error)
	GetOrCreateByEmail(ctx context.Context, email string) (*domain.Student, error)
	Create(ctx context.Context, s *domain.Student) error
	UpdateName(ctx context.Context, id uint, name string) error
	EnrolledCourseIDs(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error)
	AddEnrollments(ctx context.Context, s *domain.Student, courses []domain.Course) error
}

type CourseLookup interface {
	GetByID(ctx context.Context, id uint) (*domain.Course, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Course, error)
}

type EnrollmentResult struct {
	Count   int
	Courses []domain.Course
}

type EnrollmentUseCase struct {
	students StudentStore
	courses  CourseLookup
	log      *logger.Logger
}

func NewEnrollmentUseCase(ss StudentStore, cl CourseLookup, log *logger.Logger) *EnrollmentUseCase {
	return &EnrollmentUseCase{students: ss, courses: cl, log: log}
}

// Resolve находит студента по email или создает его.
// Имя обновляется только если отличается, иначе записи в БД нет
func (uc *EnrollmentUseCase) Resolve(ctx context.Context, email, name string) (*domain.Student, error) {
	student, err := uc.students.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrStudentNotFound) {
		student = &domain.Student{Email: email, Name: name}
		err = uc.students.Create(ctx, student)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, domain.ErrStudentExists) {
			return nil, err
		}
		// параллельный запрос успел создать студента
		student, err = uc.students.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	if student.Name != name {
		if err := uc.students.UpdateName(ctx, student.ID, name); err != nil {
			return nil, err
		}
		student.Name = name
	}
	return student, nil
}

// Reconcile записывает студента только на те курсы, которых у него еще нет.
// Порядок результата совпадает с порядком requested. Если добавлять нечего -
// domain.ErrNoNewEnrollment. Существующие записи никогда не удаляются
func (uc *EnrollmentUseCase) Reconcile(ctx context.Context, student *domain.Student, requested []domain.Course) (*EnrollmentResult, error) {
	ids := make([]uint, 0, len(requested))
	for _, c := range requested {
		ids = append(ids, c.ID)
	}

	held, err := uc.students.EnrolledCourseIDs(ctx, student.ID, ids)
	if err != nil {
		return nil, err
	}
	skip := make(map[uint]bool, len(held)+len(requested))
	for _, id := range held {
		skip[id] = true
	}

	var newCourses []domain.Course
	for _, c := range requested {
		if skip[c.ID] {
			continue
		}
		skip[c.ID] = true
		newCourses = append(newCourses, c)
	}
	if len(newCourses) == 0 {
		return nil, domain.ErrNoNewEnrollment
	}

	if err := uc.students.AddEnrollments(ctx, student, newCourses); err != nil {
		return nil, err
	}
	return &EnrollmentResult{Count: len(newCourses), Courses: newCourses}, nil
}

// Enroll - сценарий формы записи: несколько курсов, сверка с уже имеющимися
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, email, name string, courseIDs []uint) (*domain.Student, *EnrollmentResult, error) {
	courses, err := uc.courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, nil, err
	}

	student, err := uc.Resolve(ctx, email, name)
	if err != nil {
		return nil, nil, err
	}

	res, err := uc.Reconcile(ctx, student, courses)
	if err != nil {
		if errors.Is(err, domain.ErrNoNewEnrollment) {
			uc.log.Info("enrollment skipped, nothing new", "email", email, "course_ids", courseIDs)
		}
		return student, nil, err
	}

	uc.log.Info("student enrolled", "email", email, "count", res.Count)

	// полный набор курсов студента, а не только добавленные сейчас
	profile, err := uc.students.GetProfile(ctx, email)
	if err != nil {
		uc.log.Warn("student profile reload failed", "email", email, "error", err)
		return student, res, nil
	}
	return profile, res, nil
}

// EnrollOne - JSON API: один курс, без сверки, всегда успех если курс найден
func (uc *EnrollmentUseCase) EnrollOne(ctx context.Context, email string, courseID uint) (*domain.Student, *domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	student, err := uc.students.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.students.AddEnrollments(ctx, student, []domain.Course{*course}); err != nil {
		return nil, nil, err
	}
	return student, course, nil
}
