package repository

import (
	"gorm.io/gorm"

	"github.com/waste3d/coursehub/internal/domain"
)

// AutoMigrate создает таблицы и join-таблицы many2many
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Course{},
		&domain.Lesson{},
		&domain.Student{},
		&domain.User{},
	)
}
