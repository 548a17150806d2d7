package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

func newTestMarkService(students ...*model.Student) (*MarkService, *fakeMarkStore) {
	marks := newFakeMarkStore()
	return NewMarkService(marks, newFakeStudentStore(students...), &fakeActivity{}), marks
}

func TestMarkAddDefaultsMaxMarks(t *testing.T) {
	svc, _ := newTestMarkService(&model.Student{ID: 1, Name: "John", RegisterNumber: "R1", Email: "j@x", Department: "CSE", Year: 1})

	mark, err := svc.Add(context.Background(), 1, dto.AddMarkRequest{Subject: "Maths", Marks: 78})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if mark.MaxMarks != 100 {
		t.Fatalf("max marks = %d, want 100", mark.MaxMarks)
	}
}

func TestMarkAddUnknownStudent(t *testing.T) {
	svc, _ := newTestMarkService()
	_, err := svc.Add(context.Background(), 42, dto.AddMarkRequest{Subject: "Maths", Marks: 50})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want student not found", err)
	}
}

func TestMarkReportAggregates(t *testing.T) {
	svc, _ := newTestMarkService(&model.Student{ID: 1, Name: "John", RegisterNumber: "R1", Email: "j@x", Department: "CSE", Year: 1})
	ctx := context.Background()

	for _, m := range []dto.AddMarkRequest{
		{Subject: "Maths", Marks: 80, MaxMarks: 100},
		{Subject: "Physics", Marks: 65, MaxMarks: 100},
		{Subject: "Lab", Marks: 45, MaxMarks: 50},
	} {
		if _, err := svc.Add(ctx, 1, m); err != nil {
			t.Fatalf("add %s: %v", m.Subject, err)
		}
	}

	report, err := svc.Report(ctx, 1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.Marks) != 3 {
		t.Fatalf("entries = %d, want the marks alongside the aggregates", len(report.Marks))
	}
	if report.SubjectCount != 3 || report.Total != 190 || report.MaxTotal != 250 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Average != 63.33 {
		t.Fatalf("average = %v, want 63.33", report.Average)
	}
	if report.Percentage != 76 {
		t.Fatalf("percentage = %v, want 76", report.Percentage)
	}
}

func TestMarkReportNoMarks(t *testing.T) {
	svc, _ := newTestMarkService(&model.Student{ID: 1, Name: "John", RegisterNumber: "R1", Email: "j@x", Department: "CSE", Year: 1})

	report, err := svc.Report(context.Background(), 1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.SubjectCount != 0 || report.Total != 0 || report.Average != 0 || report.Percentage != 0 {
		t.Fatalf("expected zero report, got %+v", report)
	}
	if report.Marks == nil || len(report.Marks) != 0 {
		t.Fatalf("entries = %+v, want empty non-nil slice", report.Marks)
	}
}

func TestMarkUpdateAndDelete(t *testing.T) {
	svc, _ := newTestMarkService(&model.Student{ID: 1, Name: "John", RegisterNumber: "R1", Email: "j@x", Department: "CSE", Year: 1})
	ctx := context.Background()

	mark, err := svc.Add(ctx, 1, dto.AddMarkRequest{Subject: "Maths", Marks: 40})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	newMarks := 90
	updated, err := svc.Update(ctx, mark.ID, dto.UpdateMarkRequest{Marks: &newMarks})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Marks != 90 || updated.Subject != "Maths" {
		t.Fatalf("unexpected mark %+v", updated)
	}

	if err := svc.Delete(ctx, mark.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, mark.ID); !errors.Is(err, apperrors.ErrMarkNotFound) {
		t.Fatalf("err = %v, want mark not found", err)
	}
}
