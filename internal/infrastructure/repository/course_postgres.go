package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/infrastructure/cache"
	"github.com/waste3d/coursehub/internal/logger"
)

// CourseCache - read-through кеш перед БД. nil отключает кеш.
// Промах - cache.ErrMiss, любая другая ошибка пишется в лог
type CourseCache interface {
	GetCourse(ctx context.Context, id uint) (*domain.Course, error)
	SetCourse(ctx context.Context, course *domain.Course) error
	GetList(ctx context.Context) ([]domain.Course, error)
	SetList(ctx context.Context, courses []domain.Course) error
	Invalidate(ctx context.Context, ids ...uint) error
}

type CourseRepository struct {
	db    *gorm.DB
	cache CourseCache
	log   *logger.Logger
}

func NewCourseRepository(db *gorm.DB, cache CourseCache, log *logger.Logger) *CourseRepository {
	return &CourseRepository{db: db, cache: cache, log: log}
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	if r.cache != nil {
		courses, err := r.cache.GetList(ctx)
		if err == nil {
			return courses, nil
		}
		r.cacheReadFailed(err, "key", "courses:list")
	}

	var courses []domain.Course
	if err := r.db.WithContext(ctx).Order("id asc").Find(&courses).Error; err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SetList(ctx, courses); err != nil {
			r.log.Warn("course list cache write failed", "error", err)
		}
	}
	return courses, nil
}

// GetByID - без уроков
func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// GetWithLessons - карточка курса с уроками, кешируется
func (r *CourseRepository) GetWithLessons(ctx context.Context, id uint) (*domain.Course, error) {
	if r.cache != nil {
		c, err := r.cache.GetCourse(ctx, id)
		if err == nil {
			return c, nil
		}
		r.cacheReadFailed(err, "course_id", id)
	}

	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SetCourse(ctx, &course); err != nil {
			r.log.Warn("course cache write failed", "course_id", id, "error", err)
		}
	}
	return &course, nil
}

// GetByIDs возвращает курсы в порядке ids. Повторы схлопываются,
// любой отсутствующий id - ErrCourseNotFound
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []domain.Course
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]domain.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]domain.Course, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		c, ok := byID[id]
		if !ok {
			return nil, domain.ErrCourseNotFound
		}
		seen[id] = true
		out = append(out, c)
	}
	return out, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	res := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":       c.Title,
			"description": c.Description,
			"duration":    c.Duration,
			"thumbnail":   c.Thumbnail,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	r.invalidate(ctx, c.ID)
	return nil
}

// Delete удаляет курс вместе с уроками и всеми связями студентов
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_completed_lessons WHERE lesson_id IN (SELECT id FROM lessons WHERE course_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM student_enrolled_courses WHERE course_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&domain.Lesson{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CourseRepository) cacheReadFailed(err error, keysAndValues ...interface{}) {
	if errors.Is(err, cache.ErrMiss) {
		return
	}
	r.log.Warn("course cache read failed", append(keysAndValues, "error", err)...)
}

func (r *CourseRepository) invalidate(ctx context.Context, ids ...uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, ids...); err != nil {
		r.log.Warn("course cache invalidation failed", "course_ids", ids, "error", err)
	}
}
