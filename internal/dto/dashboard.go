package dto

import "github.com/campusdesk/student-api/internal/model"

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// DashboardStats is the aggregate snapshot behind the dashboard page.
// The independent counts are fetched concurrently. TodayAttendance is
// the "present/total students" pair rendered as a string.
type DashboardStats struct {
	TotalStudents     int64               `json:"totalStudents"`
	TotalUsers        int64               `json:"totalUsers"`
	TotalMarks        int64               `json:"totalMarks"`
	TotalAttendance   int64               `json:"totalAttendance"`
	TotalDepartments  int64               `json:"totalDepartments"`
	TodayAttendance   string              `json:"todayAttendance"`
	AverageAttendance float64             `json:"averageAttendance"`
	Departments       []DepartmentCount   `json:"departments"`
	Years             []YearCount         `json:"years"`
	RecentActivities  []model.ActivityLog `json:"recentActivities"`
}
