package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waste3d/coursehub/internal/domain"
)

const (
	courseListKey   = "courses:list"
	courseDetailKey = "course:detail:"

	listTTL   = 10 * time.Minute
	detailTTL = time.Hour
)

// ErrMiss - ключа нет в кеше. Остальные ошибки чтения - сбой кеша
var ErrMiss = errors.New("cache miss")

// CourseCache кеширует список курсов и карточку курса с уроками
type CourseCache struct {
	client *redis.Client
}

func NewCourseCache(client *redis.Client) *CourseCache {
	return &CourseCache{client: client}
}

func detailKey(id uint) string {
	return courseDetailKey + strconv.FormatUint(uint64(id), 10)
}

func (c *CourseCache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

func (c *CourseCache) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	val, err := c.get(ctx, detailKey(id))
	if err != nil {
		return nil, err
	}
	var course domain.Course
	if err := json.Unmarshal(val, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CourseCache) SetCourse(ctx context.Context, course *domain.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, detailKey(course.ID), data, detailTTL).Err()
}

func (c *CourseCache) GetList(ctx context.Context) ([]domain.Course, error) {
	val, err := c.get(ctx, courseListKey)
	if err != nil {
		return nil, err
	}
	var courses []domain.Course
	if err := json.Unmarshal(val, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *CourseCache) SetList(ctx context.Context, courses []domain.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, courseListKey, data, listTTL).Err()
}

// Invalidate сбрасывает список и карточки переданных курсов
func (c *CourseCache) Invalidate(ctx context.Context, ids ...uint) error {
	keys := []string{courseListKey}
	for _, id := range ids {
		keys = append(keys, detailKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}
