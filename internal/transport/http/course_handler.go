package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/middleware"
)

type CourseStore interface {
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id uint) (*domain.Course, error)
	GetWithLessons(ctx context.Context, id uint) (*domain.Course, error)
	Create(ctx context.Context, c *domain.Course) error
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id uint) error

	GetLesson(ctx context.Context, id uint) (*domain.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uint) ([]domain.Lesson, error)
	CreateLesson(ctx context.Context, l *domain.Lesson) error
	UpdateLesson(ctx context.Context, l *domain.Lesson) error
	DeleteLesson(ctx context.Context, id uint) error
}

type StudentReader interface {
	GetProfile(ctx context.Context, email string) (*domain.Student, error)
	ListByCourse(ctx context.Context, courseID uint) ([]domain.Student, error)
}

type AccountReader interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type CourseHandler struct {
	courses  CourseStore
	students StudentReader
	accounts AccountReader
}

func NewCourseHandler(cs CourseStore, sr StudentReader, ar AccountReader) *CourseHandler {
	return &CourseHandler{courses: cs, students: sr, accounts: ar}
}

type courseReq struct {
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"required"`
	Duration    string `json:"duration" form:"duration"`
	Thumbnail   string `json:"thumbnail" form:"thumbnail"`
}

func (r courseReq) toDomain(id uint) *domain.Course {
	return &domain.Course{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Thumbnail:   r.Thumbnail,
	}
}

// GET /courses, GET /app/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// GET /courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	course, err := h.courses.GetWithLessons(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// GET /app/courses/:id - курс, уроки и студент текущего пользователя (или null)
func (h *CourseHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	course, err := h.courses.GetWithLessons(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var student *domain.Student
	if user, err := h.accounts.Profile(c, c.GetString(middleware.UserIDKey)); err == nil && user.Email != "" {
		student, err = h.students.GetProfile(c, user.Email)
		if err != nil && !errors.Is(err, domain.ErrStudentNotFound) {
			respondError(c, err)
			return
		}
	}

	lessons := course.Lessons
	if lessons == nil {
		lessons = []domain.Lesson{}
	}
	c.JSON(http.StatusOK, gin.H{
		"course":   course,
		"lessons":  lessons,
		"student":  student,
		"enrolled": student != nil && student.IsEnrolled(id),
	})
}

// POST /app/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	course := req.toDomain(0)
	if err := h.courses.Create(c, course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Course created successfully!", "course": course})
}

// PUT /app/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req courseReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.courses.Update(c, req.toDomain(id)); err != nil {
		respondError(c, err)
		return
	}
	course, err := h.courses.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course updated successfully!", "course": course})
}

// DELETE /app/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.courses.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully!"})
}

// GET /app/courses/:id/students
func (h *CourseHandler) Students(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	course, err := h.courses.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	students, err := h.students.ListByCourse(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if students == nil {
		students = []domain.Student{}
	}
	c.JSON(http.StatusOK, gin.H{"course": course, "students": students})
}
