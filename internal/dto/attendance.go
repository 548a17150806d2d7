package dto

import "github.com/campusdesk/student-api/internal/model"

// UpsertAttendanceRequest marks one student on one day. Posting again
// for the same student and date overwrites the stored status.
type UpsertAttendanceRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Status    string `json:"status" binding:"required,oneof=Present Absent Leave"`
}

type AttendanceListFilter struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceReport aggregates one student's attendance. Percentage is
// present days over total days rounded to two decimals.
type AttendanceReport struct {
	TotalDays   int     `json:"totalDays"`
	PresentDays int     `json:"presentDays"`
	AbsentDays  int     `json:"absentDays"`
	LeaveDays   int     `json:"leaveDays"`
	Percentage  float64 `json:"percentage"`
}

// StudentAttendance is the per-student attendance read: the records
// together with their aggregates in one body.
type StudentAttendance struct {
	Records []model.Attendance `json:"records"`
	AttendanceReport
}

// AttendanceSummaryRow is one student's line in the attendance overview.
type AttendanceSummaryRow struct {
	StudentID      uint    `json:"studentId"`
	Name           string  `json:"name"`
	RegisterNumber string  `json:"registerNumber"`
	Department     string  `json:"department"`
	TotalDays      int     `json:"totalDays"`
	PresentDays    int     `json:"presentDays"`
	AbsentDays     int     `json:"absentDays"`
	LeaveDays      int     `json:"leaveDays"`
	Percentage     float64 `json:"percentage"`
}
