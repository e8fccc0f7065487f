package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/application/usecase"
	"github.com/waste3d/coursehub/internal/domain"
)

type Enroller interface {
	Enroll(ctx context.Context, email, name string, courseIDs []uint) (*domain.Student, *usecase.EnrollmentResult, error)
	EnrollOne(ctx context.Context, email string, courseID uint) (*domain.Student, *domain.Course, error)
}

type EnrollmentHandler struct {
	enroller Enroller
}

func NewEnrollmentHandler(e Enroller) *EnrollmentHandler {
	return &EnrollmentHandler{enroller: e}
}

type enrollReq struct {
	StudentEmail string `json:"student_email" form:"student_email" binding:"required,email"`
	StudentName  string `json:"student_name" form:"student_name" binding:"required,max=100"`
	CourseIDs    []uint `json:"course_ids" form:"course_ids" binding:"required,min=1"`
}

type apiEnrollReq struct {
	Email    string `json:"email" binding:"required,email"`
	CourseID uint   `json:"course_id" binding:"required"`
}

// POST /app/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error with your form. Please try again.", "details": err.Error()})
		return
	}

	student, res, err := h.enroller.Enroll(c, req.StudentEmail, req.StudentName, req.CourseIDs)
	if errors.Is(err, domain.ErrNoNewEnrollment) {
		c.JSON(http.StatusOK, gin.H{
			"message": "this email already enrolled in the selected course(s).",
			"count":   0,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Enrollment successful! You have been enrolled in %d course(s).", res.Count),
		"count":   res.Count,
		"student": student,
		"courses": res.Courses,
	})
}

// POST /enroll - без сверки с уже имеющимися записями
func (h *EnrollmentHandler) EnrollOne(c *gin.Context) {
	var req apiEnrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	student, course, err := h.enroller.EnrollOne(c, req.Email, req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has been enrolled in %s", student.Email, course.Title)})
}
