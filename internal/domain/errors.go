package domain

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentExists      = errors.New("student already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Не ошибка: все выбранные курсы у студента уже есть, запись не делалась
	ErrNoNewEnrollment = errors.New("student already enrolled in the selected course(s)")
)
