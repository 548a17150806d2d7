package database

import (
	"fmt"

	"github.com/campusdesk/student-api/config"
	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type sampleUser struct {
	Email       string
	DisplayName string
	Phone       string
	Password    string
}

type sampleStudent struct {
	Name           string
	RegisterNumber string
	Department     string
	Year           int
	Email          string
	Phone          string
}

// Seed provisions the default admin plus demo users and students.
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	return seedStudents(db)
}

func seedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	var existing model.Admin
	result := db.Where("username = ?", cfg.AdminUsername).First(&existing)
	if result.Error == nil {
		return nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Admin{
		Username:      cfg.AdminUsername,
		Password:      string(hashed),
		Email:         cfg.AdminEmail,
		EmailVerified: true,
		AuthProvider:  constants.ProviderEmail,
		Role:          constants.RoleAdmin,
	}

	return db.Create(&admin).Error
}

func seedUsers(db *gorm.DB) error {
	samples := []sampleUser{
		{Email: "user@school.edu", DisplayName: "Demo User", Phone: "+919876543210", Password: "user123"},
		{Email: "student@school.edu", DisplayName: "Demo Student", Phone: "+919876543211", Password: "student123"},
	}

	for _, s := range samples {
		var existing model.User
		result := db.Where("email = ?", s.Email).First(&existing)
		if result.Error == nil {
			continue
		}
		if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		email := s.Email
		user := model.User{
			UID:           fmt.Sprintf("user_%s", uuid.NewString()),
			Email:         &email,
			EmailVerified: true,
			Phone:         s.Phone,
			DisplayName:   s.DisplayName,
			AuthProvider:  constants.ProviderEmail,
			PasswordHash:  string(hashed),
		}

		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedStudents(db *gorm.DB) error {
	samples := []sampleStudent{
		{Name: "John Doe", RegisterNumber: "CS21A001", Department: "CSE", Year: 1, Email: "john.cs21a001@school.edu", Phone: "+919999999901"},
		{Name: "Jane Smith", RegisterNumber: "CS21A002", Department: "CSE", Year: 1, Email: "jane.cs21a002@school.edu", Phone: "+919999999902"},
		{Name: "Mike Johnson", RegisterNumber: "EC21A001", Department: "ECE", Year: 2, Email: "mike.ec21a001@school.edu", Phone: "+919999999903"},
		{Name: "Sarah Wilson", RegisterNumber: "ME21A001", Department: "MECH", Year: 2, Email: "sarah.me21a001@school.edu", Phone: "+919999999904"},
		{Name: "Tom Brown", RegisterNumber: "IT21A001", Department: "IT", Year: 3, Email: "tom.it21a001@school.edu", Phone: "+919999999905"},
	}

	for _, s := range samples {
		var existing model.Student
		result := db.Where("register_number = ?", s.RegisterNumber).First(&existing)
		if result.Error == nil {
			continue
		}
		if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		student := model.Student{
			Name:           s.Name,
			RegisterNumber: s.RegisterNumber,
			Department:     s.Department,
			Year:           s.Year,
			Email:          s.Email,
			Phone:          s.Phone,
			EmailVerified:  true,
		}

		if err := db.Create(&student).Error; err != nil {
			return err
		}
	}

	return nil
}
