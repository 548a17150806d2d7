package dto

import "github.com/campusdesk/student-api/internal/model"

type AddMarkRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Marks     int    `json:"marks" binding:"gte=0"`
	MaxMarks  int    `json:"maxMarks" binding:"omitempty,gt=0"`
}

type UpdateMarkRequest struct {
	Subject  *string `json:"subject"`
	Marks    *int    `json:"marks" binding:"omitempty,gte=0"`
	MaxMarks *int    `json:"maxMarks" binding:"omitempty,gt=0"`
}

// MarksReport aggregates a student's marks. Percentage is total over
// maxTotal rounded to two decimals, zero when no marks exist.
type MarksReport struct {
	Total        int     `json:"total"`
	MaxTotal     int     `json:"maxTotal"`
	Average      float64 `json:"average"`
	Percentage   float64 `json:"percentage"`
	SubjectCount int     `json:"subjectCount"`
}

// StudentMarks is the per-student marks read: the entries together
// with their aggregates in one body.
type StudentMarks struct {
	Marks []model.Mark `json:"marks"`
	MarksReport
}

// MarksSummaryRow is one student's line in the marks overview.
type MarksSummaryRow struct {
	StudentID      uint    `json:"studentId"`
	Name           string  `json:"name"`
	RegisterNumber string  `json:"registerNumber"`
	Department     string  `json:"department"`
	SubjectCount   int     `json:"subjectCount"`
	Total          int     `json:"total"`
	MaxTotal       int     `json:"maxTotal"`
	Average        float64 `json:"average"`
}
