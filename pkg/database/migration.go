package database

import (
	"github.com/campusdesk/student-api/internal/model"
	"gorm.io/gorm"
)

// Reset drops and recreates the whole schema. The application owns no
// durable state between runs; every start provisions from scratch.
func Reset(db *gorm.DB) error {
	migrator := db.Migrator()

	tables := []interface{}{
		&model.Session{},
		&model.ActivityLog{},
		&model.Attendance{},
		&model.Mark{},
		&model.Student{},
		&model.EmailVerification{},
		&model.OTPVerification{},
		&model.User{},
		&model.Admin{},
	}

	for _, table := range tables {
		if migrator.HasTable(table) {
			if err := migrator.DropTable(table); err != nil {
				return err
			}
		}
	}

	return AutoMigrate(db)
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Admin{},
		&model.User{},
		&model.OTPVerification{},
		&model.EmailVerification{},
		&model.Student{},
		&model.Mark{},
		&model.Attendance{},
		&model.ActivityLog{},
		&model.Session{},
	)
}
