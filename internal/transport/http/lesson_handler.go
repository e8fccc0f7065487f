package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/middleware"
)

type LessonCompleter interface {
	CompleteLesson(ctx context.Context, email string, lessonID uint) (*domain.Lesson, error)
}

type LessonHandler struct {
	courses  CourseStore
	progress LessonCompleter
	accounts AccountReader
}

func NewLessonHandler(cs CourseStore, lc LessonCompleter, ar AccountReader) *LessonHandler {
	return &LessonHandler{courses: cs, progress: lc, accounts: ar}
}

type lessonReq struct {
	CourseID         uint    `json:"course_id" form:"course_id" binding:"required"`
	Title            string  `json:"title" form:"title" binding:"required,max=200"`
	Content          string  `json:"content" form:"content"`
	CompletionStatus bool    `json:"completion_status" form:"completion_status"`
	VideoURL         *string `json:"video_url" form:"video_url" binding:"omitempty,url"`
}

func (r lessonReq) toDomain(id uint) *domain.Lesson {
	return &domain.Lesson{
		ID:               id,
		CourseID:         r.CourseID,
		Title:            r.Title,
		Content:          r.Content,
		CompletionStatus: r.CompletionStatus,
		VideoURL:         r.VideoURL,
	}
}

// GET /app/courses/:id/lessons
func (h *LessonHandler) List(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.courses.GetByID(c, id); err != nil {
		respondError(c, err)
		return
	}
	lessons, err := h.courses.LessonsByCourse(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if lessons == nil {
		lessons = []domain.Lesson{}
	}
	c.JSON(http.StatusOK, gin.H{"course_id": id, "lessons": lessons})
}

// POST /app/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var req lessonReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	lesson := req.toDomain(0)
	if err := h.courses.CreateLesson(c, lesson); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lesson created successfully!", "lesson": lesson})
}

// PUT /app/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req lessonReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.courses.UpdateLesson(c, req.toDomain(id)); err != nil {
		respondError(c, err)
		return
	}
	lesson, err := h.courses.GetLesson(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully!", "lesson": lesson})
}

// DELETE /app/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.courses.DeleteLesson(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully!"})
}

// POST /app/lessons/:id/complete
func (h *LessonHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.accounts.Profile(c, c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account has no email"})
		return
	}
	lesson, err := h.progress.CompleteLesson(c, user.Email, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson marked as completed", "lesson_id": lesson.ID})
}
