package service

import (
	"context"
	"fmt"
	"math"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	"github.com/campusdesk/student-api/internal/model"
)

type markStore interface {
	ListByStudent(ctx context.Context, studentID uint) ([]model.Mark, error)
	GetByID(ctx context.Context, id uint) (*model.Mark, error)
	Create(ctx context.Context, mark *model.Mark) error
	Update(ctx context.Context, mark *model.Mark) error
	Delete(ctx context.Context, id uint) error
	Summary(ctx context.Context) ([]dto.MarksSummaryRow, error)
}

type studentReader interface {
	GetByID(ctx context.Context, id uint) (*model.Student, error)
}

// MarkService manages subject marks and their aggregates.
type MarkService struct {
	marks    markStore
	students studentReader
	activity activityRecorder
}

func NewMarkService(marks markStore, students studentReader, activity activityRecorder) *MarkService {
	return &MarkService{marks: marks, students: students, activity: activity}
}

func (s *MarkService) Add(ctx context.Context, studentID uint, req dto.AddMarkRequest) (*model.Mark, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	maxMarks := req.MaxMarks
	if maxMarks == 0 {
		maxMarks = 100
	}
	mark := &model.Mark{
		StudentID: studentID,
		Subject:   req.Subject,
		Marks:     req.Marks,
		MaxMarks:  maxMarks,
	}
	if err := s.marks.Create(ctx, mark); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, constants.ActionAddMarks,
		fmt.Sprintf("Added %s marks for %s", mark.Subject, student.Name),
		map[string]any{"student_id": studentID, "subject": mark.Subject})
	return mark, nil
}

// Update edits a single mark entry. Mark edits are not written to the
// activity trail.
func (s *MarkService) Update(ctx context.Context, id uint, req dto.UpdateMarkRequest) (*model.Mark, error) {
	mark, err := s.marks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		mark.Subject = *req.Subject
	}
	if req.Marks != nil {
		mark.Marks = *req.Marks
	}
	if req.MaxMarks != nil {
		mark.MaxMarks = *req.MaxMarks
	}

	if err := s.marks.Update(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

func (s *MarkService) Delete(ctx context.Context, id uint) error {
	return s.marks.Delete(ctx, id)
}

// Report returns one student's mark entries together with their
// aggregates. All figures are zero when no marks exist.
func (s *MarkService) Report(ctx context.Context, studentID uint) (*dto.StudentMarks, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	marks, err := s.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Mark{}
	}

	report := &dto.StudentMarks{Marks: marks}
	report.SubjectCount = len(marks)
	for _, m := range marks {
		report.Total += m.Marks
		report.MaxTotal += m.MaxMarks
	}
	if len(marks) > 0 {
		report.Average = round2(float64(report.Total) / float64(len(marks)))
	}
	if report.MaxTotal > 0 {
		report.Percentage = round2(float64(report.Total) * 100 / float64(report.MaxTotal))
	}
	return report, nil
}

func (s *MarkService) Summary(ctx context.Context) ([]dto.MarksSummaryRow, error) {
	return s.marks.Summary(ctx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
