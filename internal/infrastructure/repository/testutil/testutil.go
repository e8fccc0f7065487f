package testutil

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/infrastructure/repository"
)

// DB - отдельная in-memory sqlite на каждый тест
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// одно соединение = одна и та же in-memory база
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func SeedCourse(tb testing.TB, db *gorm.DB, id uint, title string) *domain.Course {
	tb.Helper()
	c := &domain.Course{ID: id, Title: title, Description: "about " + title, Duration: "4 weeks"}
	if err := db.WithContext(context.Background()).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, db *gorm.DB, courseID uint, title string) *domain.Lesson {
	tb.Helper()
	l := &domain.Lesson{CourseID: courseID, Title: title}
	if err := db.WithContext(context.Background()).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedStudent(tb testing.TB, db *gorm.DB, email, name string) *domain.Student {
	tb.Helper()
	s := &domain.Student{Email: email, Name: name}
	if err := db.WithContext(context.Background()).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}
