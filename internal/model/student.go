package model

import (
	"time"
)

// Student is the core academic record. Deleting a student cascades to
// marks and attendance.
type Student struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	RegisterNumber string    `gorm:"column:register_number;unique;not null" json:"register_number"`
	Department     string    `gorm:"column:department;not null" json:"department"`
	Year           int       `gorm:"column:year;not null" json:"year"`
	Email          string    `gorm:"column:email;unique;not null" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone,omitempty"`
	EmailVerified  bool      `gorm:"column:email_verified;default:false" json:"email_verified"`
	PhoneVerified  bool      `gorm:"column:phone_verified;default:false" json:"phone_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Mark is one subject score for a student. Duplicate (student, subject)
// rows are allowed.
type Mark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"column:student_id;not null;index" json:"student_id"`
	Subject   string    `gorm:"column:subject;not null" json:"subject"`
	Marks     int       `gorm:"column:marks;not null" json:"marks"`
	MaxMarks  int       `gorm:"column:max_marks;default:100" json:"max_marks"`
	CreatedAt time.Time `json:"created_at"`
}

// Attendance holds one record per student per calendar day, enforced by
// the upsert path rather than a schema constraint. Dates travel as
// YYYY-MM-DD strings end to end.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"column:student_id;not null;index" json:"student_id"`
	Date      string    `gorm:"column:date;size:10;not null;index" json:"date"`
	Status    string    `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}
