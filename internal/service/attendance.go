package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

type attendanceStore interface {
	GetByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.Attendance, error)
	Create(ctx context.Context, record *model.Attendance) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	ListByStudent(ctx context.Context, studentID uint, filter dto.AttendanceListFilter) ([]model.Attendance, error)
	Summary(ctx context.Context) ([]dto.AttendanceSummaryRow, error)
}

// AttendanceService maintains the one-row-per-student-per-day
// attendance ledger.
type AttendanceService struct {
	attendance attendanceStore
	students   studentReader
	activity   activityRecorder
}

func NewAttendanceService(attendance attendanceStore, students studentReader, activity activityRecorder) *AttendanceService {
	return &AttendanceService{attendance: attendance, students: students, activity: activity}
}

// Upsert records the status for the student and date, overwriting an
// existing row for the same pair.
func (s *AttendanceService) Upsert(ctx context.Context, req dto.UpsertAttendanceRequest) (*model.Attendance, error) {
	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.attendance.GetByStudentAndDate(ctx, req.StudentID, req.Date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var record *model.Attendance
	if existing != nil {
		if err := s.attendance.UpdateStatus(ctx, existing.ID, req.Status); err != nil {
			return nil, err
		}
		existing.Status = req.Status
		record = existing
	} else {
		record = &model.Attendance{
			StudentID: req.StudentID,
			Date:      req.Date,
			Status:    req.Status,
		}
		if err := s.attendance.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	s.activity.Record(ctx, constants.ActionAttendance,
		fmt.Sprintf("Marked %s %s on %s", student.Name, req.Status, req.Date),
		map[string]any{"student_id": req.StudentID, "date": req.Date, "status": req.Status})
	return record, nil
}

// Report returns one student's attendance records together with their
// aggregates. The date filter scopes both the records and the derived
// counts. Percentage is zero when no rows match.
func (s *AttendanceService) Report(ctx context.Context, studentID uint, filter dto.AttendanceListFilter) (*dto.StudentAttendance, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.attendance.ListByStudent(ctx, studentID, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Attendance{}
	}

	report := &dto.StudentAttendance{Records: records}
	report.TotalDays = len(records)
	for _, r := range records {
		switch r.Status {
		case constants.AttendancePresent:
			report.PresentDays++
		case constants.AttendanceAbsent:
			report.AbsentDays++
		case constants.AttendanceLeave:
			report.LeaveDays++
		}
	}
	if report.TotalDays > 0 {
		report.Percentage = round2(float64(report.PresentDays) * 100 / float64(report.TotalDays))
	}
	return report, nil
}

func (s *AttendanceService) Summary(ctx context.Context) ([]dto.AttendanceSummaryRow, error) {
	return s.attendance.Summary(ctx)
}
